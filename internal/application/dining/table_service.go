package dining

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/skip2/go-qrcode"
)

// CreateTableRequest creates a new dining table
type CreateTableRequest struct {
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// UpdateTableStatusRequest moves a table to a new occupancy status
type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied reserved cleaning"`
}

// TableResponse is the API shape of a dining table
type TableResponse struct {
	ID        uuid.UUID  `json:"id"`
	Number    string     `json:"number"`
	Capacity  int        `json:"capacity"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ToTableResponse converts a domain table to its API shape
func ToTableResponse(t *dining.Table) TableResponse {
	return TableResponse{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		DeletedAt: t.DeletedAt,
	}
}

// TableService manages dining tables and their order QR codes
type TableService struct {
	tableRepo dining.TableRepository
	baseURL   string
}

// NewTableService creates a new TableService. baseURL is the public origin
// the QR codes point guests at.
func NewTableService(tableRepo dining.TableRepository, baseURL string) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Create adds a new table
func (s *TableService) Create(ctx context.Context, req CreateTableRequest) (*TableResponse, error) {
	table, err := dining.NewTable(req.Number, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// GetByID returns one table
func (s *TableService) GetByID(ctx context.Context, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// List returns active tables, optionally filtered by status
func (s *TableService) List(ctx context.Context, status string) ([]TableResponse, error) {
	var filter *dining.TableStatus
	if status != "" {
		st := dining.TableStatus(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown table status: "+status)
		}
		filter = &st
	}
	tables, err := s.tableRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TableResponse, 0, len(tables))
	for idx := range tables {
		responses = append(responses, ToTableResponse(&tables[idx]))
	}
	return responses, nil
}

// ChangeStatus moves a table to a new occupancy status
func (s *TableService) ChangeStatus(ctx context.Context, id uuid.UUID, req UpdateTableStatusRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := table.ChangeStatus(dining.TableStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// OrderURL returns the guest ordering URL encoded in the table's QR code
func (s *TableService) OrderURL(tableID uuid.UUID) string {
	return fmt.Sprintf("%s/order?table=%s", s.baseURL, tableID)
}

// QRCode renders the table's ordering URL as a PNG of the given pixel size
func (s *TableService) QRCode(ctx context.Context, id uuid.UUID, size int) ([]byte, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(s.OrderURL(table.ID), qrcode.Medium, size)
	if err != nil {
		return nil, shared.NewDomainError("QR_ENCODE_ERROR", "Failed to render QR code")
	}
	return png, nil
}

// Delete soft-deletes a table
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := table.MarkDeleted(); err != nil {
		return err
	}
	return s.tableRepo.Save(ctx, table)
}
