package receipt

import (
	"context"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/pkg/ai"
)

// UnknownMerchant is the sentinel written when extraction yields no merchant.
const UnknownMerchant = "Unknown Merchant"

type (
	// Processor runs receipt enrichment detached from the request that
	// triggered it. Each receipt id is accepted at most once; the worker
	// owns the full reconcile contract and reports nothing back to the
	// caller - the receipt row is the only channel for the outcome.
	Processor interface {
		Enqueue(receiptID uint, imageURL string)
		Shutdown()
	}

	enrichmentJob struct {
		receiptID uint
		imageURL  string
	}

	processor struct {
		receiptRepository ReceiptRepository
		aiClient          ai.Client
		jobs              chan enrichmentJob
		seen              sync.Map
		wg                sync.WaitGroup
		closeOnce         sync.Once

		mu     sync.Mutex
		closed bool
	}
)

func NewProcessor(receiptRepository ReceiptRepository, aiClient ai.Client, workers, queueSize int) Processor {
	if workers < 1 {
		workers = 1
	}
	p := &processor{
		receiptRepository: receiptRepository,
		aiClient:          aiClient,
		jobs:              make(chan enrichmentJob, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Enqueue hands a receipt to the pool. An id that was enqueued before is
// dropped, so a receipt is enriched at most once no matter who calls. A full
// queue blocks the caller until a worker frees a slot; submissions slow down
// rather than silently losing receipts. After Shutdown the job is dropped and
// the receipt stays in "processing".
func (p *processor) Enqueue(receiptID uint, imageURL string) {
	if _, loaded := p.seen.LoadOrStore(receiptID, struct{}{}); loaded {
		return
	}

	// The lock spans the send so Shutdown cannot close the channel between
	// the check and the send.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		log.Printf("receipt %d: enrichment pool is shut down, dropping job", receiptID)
		return
	}
	p.jobs <- enrichmentJob{receiptID: receiptID, imageURL: imageURL}
}

// Shutdown stops accepting work and drains jobs already queued.
func (p *processor) Shutdown() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.jobs)
	})
	p.wg.Wait()
}

func (p *processor) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.process(job)
		// The dedup entry is only needed while the job can be queued a
		// second time; afterwards the status guard in the repository
		// blocks any further write, so the entry can be dropped to keep
		// the map bounded by in-flight work.
		p.seen.Delete(job.receiptID)
	}
}

func (p *processor) process(job enrichmentJob) {
	ctx := context.Background()

	extracted, err := p.aiClient.ExtractReceipt(ctx, job.imageURL)
	if err != nil {
		log.Printf("receipt %d: extraction failed: %v", job.receiptID, err)
		p.fail(ctx, job.receiptID)
		return
	}

	merchantName, totalAmount, date, items := normalizeExtraction(extracted, time.Now())

	if err := p.receiptRepository.CompleteReceipt(ctx, job.receiptID, merchantName, totalAmount, date, items); err != nil {
		log.Printf("receipt %d: failed to store extraction result: %v", job.receiptID, err)
		p.fail(ctx, job.receiptID)
	}
}

func (p *processor) fail(ctx context.Context, receiptID uint) {
	// If even the failure write does not land the receipt stays in
	// "processing"; there is no retry path, only the log line.
	if err := p.receiptRepository.FailReceipt(ctx, receiptID); err != nil {
		log.Printf("receipt %d: failed to mark as failed: %v", receiptID, err)
	}
}

// normalizeExtraction applies the field-level defaults to a model response:
// missing merchant becomes the sentinel, missing or negative amounts become 0,
// an unparseable date becomes now, amounts are rounded to whole minor units
// and unknown item categories fall back to "Other".
func normalizeExtraction(extracted domain.ExtractedReceipt, now time.Time) (string, int64, time.Time, entities.ReceiptItemList) {
	merchantName := strings.TrimSpace(extracted.MerchantName)
	if merchantName == "" {
		merchantName = UnknownMerchant
	}

	totalAmount := int64(math.Round(extracted.TotalAmount))
	if totalAmount < 0 {
		totalAmount = 0
	}

	date, err := time.Parse("2006-01-02", extracted.Date)
	if err != nil {
		date = now
	}

	items := make(entities.ReceiptItemList, 0, len(extracted.Items))
	for _, item := range extracted.Items {
		price := int64(math.Round(item.Price))
		if price < 0 {
			price = 0
		}
		items = append(items, entities.ReceiptItem{
			Name:     strings.TrimSpace(item.Name),
			Price:    price,
			Category: normalizeCategory(item.Category),
		})
	}

	return merchantName, totalAmount, date, items
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	for _, known := range domain.ItemCategories {
		if strings.EqualFold(category, known) {
			return known
		}
	}
	return domain.CategoryOther
}
