package receipt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeAIClient struct {
	mu       sync.Mutex
	calls    int
	result   domain.ExtractedReceipt
	err      error
	response string
}

func (f *fakeAIClient) ExtractReceipt(_ context.Context, _ string) (domain.ExtractedReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

func (f *fakeAIClient) GenerateText(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

type recordingReceiptRepository struct {
	mu        sync.Mutex
	completed map[uint]entities.ReceiptItemList
	merchants map[uint]string
	totals    map[uint]int64
	failed    []uint
	failErr   error
}

func newRecordingReceiptRepository() *recordingReceiptRepository {
	return &recordingReceiptRepository{
		completed: make(map[uint]entities.ReceiptItemList),
		merchants: make(map[uint]string),
		totals:    make(map[uint]int64),
	}
}

func (r *recordingReceiptRepository) CreateReceipt(_ context.Context, receipt *entities.Receipt) error {
	receipt.ID = 1
	return nil
}

func (r *recordingReceiptRepository) GetReceiptByID(_ context.Context, _ uint) (*entities.Receipt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *recordingReceiptRepository) GetReceipts(_ context.Context, _ uuid.UUID) ([]*entities.Receipt, error) {
	return nil, nil
}

func (r *recordingReceiptRepository) DeleteReceipt(_ context.Context, _ uint) error { return nil }

func (r *recordingReceiptRepository) CompleteReceipt(_ context.Context, id uint, merchantName string, totalAmount int64, _ time.Time, items entities.ReceiptItemList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[id] = items
	r.merchants[id] = merchantName
	r.totals[id] = totalAmount
	return nil
}

func (r *recordingReceiptRepository) FailReceipt(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, id)
	return r.failErr
}

func TestProcessor_SuccessfulEnrichment(t *testing.T) {
	repo := newRecordingReceiptRepository()
	client := &fakeAIClient{
		result: domain.ExtractedReceipt{
			MerchantName: "Corner Store",
			Date:         "2026-08-01",
			TotalAmount:  1050,
			Items: []domain.ExtractedItem{
				{Name: "Milk", Price: 1050, Category: "Groceries"},
			},
		},
	}

	p := NewProcessor(repo, client, 2, 4)
	p.Enqueue(1, "https://bucket.s3.amazonaws.com/receipt-1.jpg")
	p.Shutdown()

	if repo.merchants[1] != "Corner Store" {
		t.Errorf("merchant = %q, want Corner Store", repo.merchants[1])
	}
	if repo.totals[1] != 1050 {
		t.Errorf("total = %d, want 1050", repo.totals[1])
	}
	items := repo.completed[1]
	if len(items) != 1 || items[0].Name != "Milk" || items[0].Price != 1050 || items[0].Category != "Groceries" {
		t.Errorf("items = %+v", items)
	}
	if len(repo.failed) != 0 {
		t.Errorf("failed ids = %v, want none", repo.failed)
	}
}

func TestProcessor_ExtractionErrorMarksFailed(t *testing.T) {
	repo := newRecordingReceiptRepository()
	client := &fakeAIClient{err: errors.New("model unavailable")}

	p := NewProcessor(repo, client, 1, 1)
	p.Enqueue(7, "https://bucket.s3.amazonaws.com/receipt-7.jpg")
	p.Shutdown()

	if len(repo.failed) != 1 || repo.failed[0] != 7 {
		t.Errorf("failed ids = %v, want [7]", repo.failed)
	}
	if len(repo.completed) != 0 {
		t.Errorf("a failed extraction must not write enrichment fields, got %v", repo.completed)
	}
}

func TestProcessor_FailureWriteErrorIsAbandoned(t *testing.T) {
	repo := newRecordingReceiptRepository()
	repo.failErr = errors.New("connection reset")
	client := &fakeAIClient{err: errors.New("model unavailable")}

	p := NewProcessor(repo, client, 1, 4)
	p.Enqueue(5, "https://bucket.s3.amazonaws.com/receipt-5.jpg")
	p.Enqueue(6, "https://bucket.s3.amazonaws.com/receipt-6.jpg")
	p.Shutdown()

	// The receipt stays in "processing"; the worker logs, gives up and
	// keeps draining the queue.
	if len(repo.failed) != 2 {
		t.Errorf("failure writes attempted = %d, want 2", len(repo.failed))
	}
	if len(repo.completed) != 0 {
		t.Errorf("no completion may be written, got %v", repo.completed)
	}
}

func TestProcessor_DuplicateEnqueueProcessesOnce(t *testing.T) {
	repo := newRecordingReceiptRepository()
	client := &fakeAIClient{
		result: domain.ExtractedReceipt{MerchantName: "Shop", Date: "2026-08-01"},
	}

	p := NewProcessor(repo, client, 1, 8)
	p.Enqueue(3, "https://bucket.s3.amazonaws.com/receipt-3.jpg")
	p.Enqueue(3, "https://bucket.s3.amazonaws.com/receipt-3.jpg")
	p.Enqueue(3, "https://bucket.s3.amazonaws.com/receipt-3.jpg")
	p.Shutdown()

	client.mu.Lock()
	calls := client.calls
	client.mu.Unlock()
	if calls != 1 {
		t.Errorf("extraction ran %d times, want 1", calls)
	}
}

func TestProcessor_EnqueueAfterShutdownIsDropped(t *testing.T) {
	repo := newRecordingReceiptRepository()
	client := &fakeAIClient{
		result: domain.ExtractedReceipt{MerchantName: "Shop", Date: "2026-08-01"},
	}

	p := NewProcessor(repo, client, 1, 4)
	p.Shutdown()
	p.Enqueue(9, "https://bucket.s3.amazonaws.com/receipt-9.jpg")

	client.mu.Lock()
	calls := client.calls
	client.mu.Unlock()
	if calls != 0 {
		t.Errorf("extraction ran %d times after shutdown, want 0", calls)
	}
	if len(repo.completed) != 0 || len(repo.failed) != 0 {
		t.Error("no receipt writes may happen after shutdown")
	}
}

func TestNormalizeExtraction_Defaults(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	merchant, total, date, items := normalizeExtraction(domain.ExtractedReceipt{}, now)
	if merchant != UnknownMerchant {
		t.Errorf("merchant = %q, want %q", merchant, UnknownMerchant)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if !date.Equal(now) {
		t.Errorf("missing date should fall back to now, got %v", date)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestNormalizeExtraction_RoundsAndClamps(t *testing.T) {
	now := time.Now()
	extracted := domain.ExtractedReceipt{
		MerchantName: "  Cafe  ",
		Date:         "2026-02-14",
		TotalAmount:  1049.6,
		Items: []domain.ExtractedItem{
			{Name: " Coffee ", Price: 450.4, Category: "dining"},
			{Name: "Refund", Price: -100, Category: "Nonsense"},
			{Name: "Bag", Price: 99, Category: ""},
		},
	}

	merchant, total, date, items := normalizeExtraction(extracted, now)
	if merchant != "Cafe" {
		t.Errorf("merchant = %q, want Cafe", merchant)
	}
	if total != 1050 {
		t.Errorf("total = %d, want 1050", total)
	}
	if date.Year() != 2026 || date.Month() != time.February || date.Day() != 14 {
		t.Errorf("date = %v, want 2026-02-14", date)
	}
	if items[0].Name != "Coffee" || items[0].Price != 450 || items[0].Category != "Dining" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Price != 0 || items[1].Category != domain.CategoryOther {
		t.Errorf("item 1 = %+v, want price 0 and category Other", items[1])
	}
	if items[2].Category != "" {
		t.Errorf("item 2 category = %q, want empty passthrough", items[2].Category)
	}
}

func TestNormalizeExtraction_BadDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	_, _, date, _ := normalizeExtraction(domain.ExtractedReceipt{Date: "14/02/2026"}, now)
	if !date.Equal(now) {
		t.Errorf("unparseable date should fall back to now, got %v", date)
	}
}
