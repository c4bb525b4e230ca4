package ai

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"SpendLens-Backend/domain"
)

func TestCleanModelJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"merchantName":"Shop"}`,
			want: `{"merchantName":"Shop"}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"merchantName\":\"Shop\"}\n```",
			want: `{"merchantName":"Shop"}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"merchantName\":\"Shop\"}\n```",
			want: `{"merchantName":"Shop"}`,
		},
		{
			name: "surrounding prose",
			in:   "Here is the result: {\"merchantName\":\"Shop\"} hope that helps!",
			want: `{"merchantName":"Shop"}`,
		},
		{
			name: "no object",
			in:   "sorry, I cannot read this image",
			want: "sorry, I cannot read this image",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanModelJSON(tc.in); got != tc.want {
				t.Errorf("CleanModelJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseExtractionText(t *testing.T) {
	text := "```json\n" + `{
		"merchantName": "Corner Store",
		"date": "2026-08-01",
		"totalAmount": 1050,
		"items": [{"name": "Milk", "price": 1050, "category": "Groceries"}]
	}` + "\n```"

	extracted, err := ParseExtractionText(text)
	if err != nil {
		t.Fatalf("ParseExtractionText: %v", err)
	}

	if extracted.MerchantName != "Corner Store" {
		t.Errorf("merchant = %q", extracted.MerchantName)
	}
	if extracted.Date != "2026-08-01" {
		t.Errorf("date = %q", extracted.Date)
	}
	if extracted.TotalAmount != 1050 {
		t.Errorf("total = %v", extracted.TotalAmount)
	}
	if len(extracted.Items) != 1 || extracted.Items[0].Category != "Groceries" {
		t.Errorf("items = %+v", extracted.Items)
	}
}

func TestParseExtractionText_FractionalAmounts(t *testing.T) {
	extracted, err := ParseExtractionText(`{"merchantName":"Cafe","totalAmount":10.5,"items":[]}`)
	if err != nil {
		t.Fatalf("ParseExtractionText: %v", err)
	}
	if extracted.TotalAmount != 10.5 {
		t.Errorf("total = %v, want 10.5", extracted.TotalAmount)
	}
}

func TestParseExtractionText_Empty(t *testing.T) {
	_, err := ParseExtractionText("")
	if !errors.Is(err, domain.ErrEmptyExtraction) {
		t.Errorf("got %v, want ErrEmptyExtraction", err)
	}
}

func TestParseExtractionText_Invalid(t *testing.T) {
	_, err := ParseExtractionText("{not valid json")
	if err == nil {
		t.Error("malformed payload should fail to parse")
	}
}

func TestFetchImage_SizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(bytes.Repeat([]byte{0xFF}, maxImageBytes+1))
	}))
	defer server.Close()

	client := &geminiClient{httpClient: server.Client()}
	_, _, err := client.fetchImage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("an image above the size cap must be rejected")
	}
}

func TestFetchImage_SmallImage(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	client := &geminiClient{httpClient: server.Client()}
	data, mimeType, err := client.fetchImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetchImage: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
	if mimeType != "image/png" {
		t.Errorf("mime type = %q, want image/png", mimeType)
	}
}
