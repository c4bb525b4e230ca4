package domain

import (
	"errors"
)

var (
	MessageFailedGenerateAdvice = "failed to generate advice"
	MessageFailedGetAdvice      = "failed to retrieve advice"

	ErrAdviceGenerationFailed = errors.New("advice generation failed")
)

// AdviceContextManual tags advice rows created by an explicit user request.
const AdviceContextManual = "manual_generation"
