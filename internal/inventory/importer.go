package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// ImportMode decides what happens to CSV rows naming an existing product.
type ImportMode string

const (
	ImportSkip   ImportMode = "skip"
	ImportUpdate ImportMode = "update"
)

// ParseImportMode defaults to ImportSkip for anything but "update".
func ParseImportMode(s string) ImportMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ImportUpdate)) {
		return ImportUpdate
	}
	return ImportSkip
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

var requiredColumns = []string{"name", "price", "quantity"}

// ImportProducts reads products from CSV. The header names the columns:
// name, price and quantity are required; min_quantity (or threshold),
// description and category are optional. Rows are applied one by one and
// a bad row does not stop the import.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader, mode ImportMode) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperr.Validation(apperr.FieldError{Field: "file", Description: "invalid CSV header"})
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["min_quantity"]; !ok {
		if i, ok := index["threshold"]; ok {
			index["min_quantity"] = i
		}
	}
	var missing []apperr.FieldError
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, apperr.FieldError{Field: col, Description: "column is missing from the CSV header"})
		}
	}
	if len(missing) > 0 {
		return ImportResult{}, apperr.Validation(missing...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := ImportResult{Errors: []RowError{}}
	for rowNum := 2; ; rowNum++ { // header is row 1
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Message: parseErr.Err.Error()})
				continue
			}
			return result, apperr.Storage("read CSV", err)
		}

		in, err := rowInput(record, index)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if err := s.importRow(ctx, in, mode, &result); err != nil {
			if apperr.Is(err, apperr.KindStorage) {
				return result, err
			}
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: rowMessage(err)})
		}
	}

	s.logger.InfoContext(ctx, "products imported",
		slog.Int("imported", result.Imported),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *Service) importRow(ctx context.Context, in ProductInput, mode ImportMode, result *ImportResult) error {
	in.normalize()
	if err := s.validateStruct(in); err != nil {
		return err
	}

	existing, err := s.store.Products().GetByName(ctx, in.Name)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		if _, err := s.addProduct(ctx, in); err != nil {
			return err
		}
		result.Imported++
		return nil
	case err != nil:
		return apperr.Storage("look up product", err)
	}

	if mode == ImportSkip {
		result.Skipped++
		return fmt.Errorf("product %q already exists", in.Name)
	}

	applyInput(&existing, in)
	existing.UpdatedAt = s.timestamp()
	if _, err := s.store.Products().Update(ctx, existing); err != nil {
		return translate("update product", existing.ID, err)
	}
	result.Updated++
	return nil
}

func rowInput(record []string, index map[string]int) (ProductInput, error) {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	in := ProductInput{
		Name:        field("name"),
		Description: field("description"),
		Category:    field("category"),
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return ProductInput{}, fmt.Errorf("invalid price %q", field("price"))
	}
	in.Price = price

	qty, err := strconv.Atoi(field("quantity"))
	if err != nil {
		return ProductInput{}, fmt.Errorf("invalid quantity %q", field("quantity"))
	}
	in.Quantity = &qty

	if v := field("min_quantity"); v != "" {
		minQty, err := strconv.Atoi(v)
		if err != nil {
			return ProductInput{}, fmt.Errorf("invalid min_quantity %q", v)
		}
		in.MinQuantity = minQty
	}
	return in, nil
}

func rowMessage(err error) string {
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f.Field + " " + f.Description
		}
		return strings.Join(parts, "; ")
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return apperr.Message(err)
	}
	return err.Error()
}
