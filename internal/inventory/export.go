package inventory

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportCSV, ExportJSON:
		return ExportFormat(s), nil
	}
	return "", apperr.Validation(apperr.FieldError{Field: "format", Description: "must be one of [csv json]"})
}

// ExportMovements writes every movement selected by filter to w, oldest
// first. Pagination in filter is ignored.
func (s *Service) ExportMovements(ctx context.Context, filter repo.MovementFilter, format ExportFormat, w io.Writer) error {
	filter.Offset, filter.Limit = nil, nil
	filter.OldestFirst = true

	movements, _, err := s.ListMovements(ctx, filter)
	if err != nil {
		return err
	}

	switch format {
	case ExportJSON:
		if err := json.NewEncoder(w).Encode(nonNil(movements)); err != nil {
			return fmt.Errorf("encode movements: %w", err)
		}
		return nil
	case ExportCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "product_id", "product_name", "type", "quantity", "unit_price", "total", "notes", "created_at"})
		for _, m := range movements {
			_ = cw.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ProductID),
				m.ProductName,
				string(m.Type),
				strconv.Itoa(m.Quantity),
				strconv.FormatFloat(m.UnitPrice, 'f', 2, 64),
				strconv.FormatFloat(m.Total(), 'f', 2, 64),
				m.Notes,
				m.CreatedAt.Format(time.RFC3339),
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("write movements CSV: %w", err)
		}
		return nil
	default:
		_, err := ParseExportFormat(string(format))
		return err
	}
}

// ExportProducts writes every product selected by filter to w in id order.
// Pagination in filter is ignored.
func (s *Service) ExportProducts(ctx context.Context, filter repo.ProductFilter, format ExportFormat, w io.Writer) error {
	filter.Offset, filter.Limit = nil, nil

	products, _, err := s.ListProducts(ctx, filter)
	if err != nil {
		return err
	}

	switch format {
	case ExportJSON:
		if err := json.NewEncoder(w).Encode(nonNil(products)); err != nil {
			return fmt.Errorf("encode products: %w", err)
		}
		return nil
	case ExportCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "name", "description", "category", "price", "quantity", "min_quantity", "status", "created_at", "updated_at"})
		for _, p := range products {
			_ = cw.Write(productRecord(p))
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("write products CSV: %w", err)
		}
		return nil
	default:
		_, err := ParseExportFormat(string(format))
		return err
	}
}

func productRecord(p models.Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Description,
		p.Category,
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		strconv.Itoa(p.Quantity),
		strconv.Itoa(p.MinQuantity),
		string(p.Status()),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	}
}
