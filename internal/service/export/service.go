// Package export builds the canonical CSV exports of the two record
// collections and hands them to download and mirror sinks.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/sheets"
	"github.com/granjaops/granja/internal/store"
)

// Kind selects which collection is exported.
type Kind string

const (
	KindFinancial  Kind = "financial"
	KindProduction Kind = "production"
)

// ErrNoData is returned when the requested collection is empty; no file is
// produced and the caller notifies the user.
var ErrNoData = errors.New("no data to export")

// ErrUnknownKind is returned for kinds outside financial/production.
var ErrUnknownKind = errors.New("unknown export kind")

// Fixed download filenames per kind.
const (
	financialFilename  = "transacoes_financeiras.csv"
	productionFilename = "producao_ovos.csv"
)

var (
	financialPreferredOrder = []string{
		"id", "date", "type", "description", "category", "amount", "paymentMethod",
		"packagingId", "packagingLabel", "unitsSold", "totalEggsSold", "freightCostApplied",
	}
	productionPreferredOrder = []string{
		"id", "date", "collectionTimeOfDayId", "collectionTimeOfDayLabel", "quantity",
	}
)

// File is a complete export ready to hand to a download collaborator.
type File struct {
	Name    string
	Content []byte
}

// Service builds CSV exports. The sheets mirror is optional; when set every
// export is also appended to the configured spreadsheet.
type Service struct {
	transactions *store.TransactionStore
	production   *store.ProductionStore
	downloadDir  string
	mirror       sheets.Repository
	logger       *zap.Logger
}

// NewService wires a new export service instance. mirror may be nil.
func NewService(transactions *store.TransactionStore, production *store.ProductionStore, downloadDir string, mirror sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transactions: transactions,
		production:   production,
		downloadDir:  downloadDir,
		mirror:       mirror,
		logger:       logger,
	}
}

// Build produces the CSV file for kind without touching any sink. An empty
// source collection yields ErrNoData.
func (s *Service) Build(kind Kind) (File, error) {
	rows, preferred, filename, err := s.collect(kind)
	if err != nil {
		return File{}, err
	}
	if len(rows) == 0 {
		return File{}, ErrNoData
	}

	return File{Name: filename, Content: []byte(Document(rows, preferred))}, nil
}

// Export builds the CSV for kind, writes it into the download directory and,
// when a mirror is configured, appends the rows to the spreadsheet. The
// built file is returned for the caller's own delivery.
func (s *Service) Export(ctx context.Context, kind Kind) (File, error) {
	file, err := s.Build(kind)
	if err != nil {
		return File{}, err
	}

	if s.downloadDir != "" {
		if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
			return File{}, fmt.Errorf("create export directory: %w", err)
		}
		path := filepath.Join(s.downloadDir, file.Name)
		if err := os.WriteFile(path, file.Content, 0o644); err != nil {
			return File{}, fmt.Errorf("write export %s: %w", file.Name, err)
		}
		s.logger.Info("export written", zap.String("path", path), zap.Int("bytes", len(file.Content)))
	}

	if s.mirror != nil {
		if err := s.mirrorRows(ctx, kind); err != nil {
			// The download already succeeded; mirroring is best effort.
			s.logger.Warn("failed mirroring export to sheet", zap.String("kind", string(kind)), zap.Error(err))
		}
	}

	return file, nil
}

func (s *Service) mirrorRows(ctx context.Context, kind Kind) error {
	rows, preferred, _, err := s.collect(kind)
	if err != nil {
		return err
	}

	keys := HeaderKeys(rows, preferred)
	values := make([][]interface{}, 0, len(rows)+1)

	header := make([]interface{}, len(keys))
	for i, key := range keys {
		header[i] = key
	}
	values = append(values, header)

	for _, row := range rows {
		line := make([]interface{}, len(keys))
		for i, key := range keys {
			line[i] = row[key]
		}
		values = append(values, line)
	}

	return s.mirror.AppendRows(ctx, sheetRange(kind), values)
}

func (s *Service) collect(kind Kind) ([]Row, []string, string, error) {
	switch kind {
	case KindFinancial:
		transactions := s.transactions.All()
		rows := make([]Row, 0, len(transactions))
		for _, t := range transactions {
			rows = append(rows, flattenTransaction(t))
		}
		return rows, financialPreferredOrder, financialFilename, nil
	case KindProduction:
		records := s.production.All()
		rows := make([]Row, 0, len(records))
		for _, rec := range records {
			rows = append(rows, flattenProductionRecord(rec))
		}
		return rows, productionPreferredOrder, productionFilename, nil
	default:
		return nil, nil, "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// flattenTransaction merges egg sale details to the top level and includes
// the freight cost only when one was applied.
func flattenTransaction(t models.Transaction) Row {
	row := Row{
		"id":          t.ID,
		"type":        string(t.Type),
		"date":        t.Date,
		"description": t.Description,
		"amount":      t.Amount.String(),
	}
	if t.Category != "" {
		row["category"] = t.Category
	}
	if t.PaymentMethod != "" {
		row["paymentMethod"] = string(t.PaymentMethod)
	}
	if t.EggSaleDetails != nil {
		row["packagingId"] = t.EggSaleDetails.PackagingID
		row["packagingLabel"] = t.EggSaleDetails.PackagingLabel
		row["unitsSold"] = strconv.Itoa(t.EggSaleDetails.UnitsSold)
		row["totalEggsSold"] = strconv.Itoa(t.EggSaleDetails.TotalEggsSold)
	}
	if t.FreightCostApplied != nil {
		row["freightCostApplied"] = t.FreightCostApplied.String()
	}
	return row
}

// flattenProductionRecord adds the resolved day-part label, falling back to
// the raw id when the catalog does not know it.
func flattenProductionRecord(rec models.EggProductionRecord) Row {
	return Row{
		"id":                       rec.ID,
		"date":                     rec.Date,
		"collectionTimeOfDayId":    rec.CollectionTimeOfDayID,
		"collectionTimeOfDayLabel": models.CollectionTimeLabel(rec.CollectionTimeOfDayID),
		"quantity":                 strconv.Itoa(rec.Quantity),
	}
}

func sheetRange(kind Kind) string {
	if kind == KindFinancial {
		return "Financeiro!A:Z"
	}
	return "Producao!A:Z"
}
