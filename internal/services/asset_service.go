package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/metcal/asset-api/internal/models"
)

// ErrAssetNotFound is returned when no asset matches the given id.
var ErrAssetNotFound = errors.New("asset not found")

// AssetServiceProvider defines the interface for asset services.
type AssetServiceProvider interface {
	GetAllAssets() ([]models.Asset, error)
	GetAssetByID(id int64) (models.Asset, error)
	CreateAsset(fields map[string]any) (int64, error)
	UpdateAsset(id int64, fields map[string]any) (bool, error)
}

// AssetService provides persistence for asset records.
type AssetService struct {
	db *sql.DB
}

// NewAssetService creates a new AssetService.
func NewAssetService(db *sql.DB) *AssetService {
	return &AssetService{db: db}
}

const assetSelect = `SELECT id, name, category, owner, status, location, value, purchase_date,
	metadata, created_at, updated_at FROM asset`

// scanAsset is a helper to scan an asset from a row or rows object.
func scanAsset(scanner interface{ Scan(...any) error }) (models.Asset, error) {
	var asset models.Asset
	var category, owner, status, location, purchaseDate, metadata, updatedAt sql.NullString
	var value sql.NullFloat64

	err := scanner.Scan(
		&asset.ID, &asset.Name, &category, &owner, &status, &location,
		&value, &purchaseDate, &metadata, &asset.CreatedAt, &updatedAt,
	)
	if err != nil {
		return asset, err
	}

	if category.Valid {
		asset.Category = &category.String
	}
	if owner.Valid {
		asset.Owner = &owner.String
	}
	if status.Valid {
		asset.Status = &status.String
	}
	if location.Valid {
		asset.Location = &location.String
	}
	if value.Valid {
		asset.Value = &value.Float64
	}
	if purchaseDate.Valid {
		asset.PurchaseDate = &purchaseDate.String
	}
	if metadata.Valid {
		asset.Metadata = &metadata.String
	}
	if updatedAt.Valid {
		asset.UpdatedAt = &updatedAt.String
	}
	return asset, nil
}

// GetAllAssets retrieves every asset, most recently created first.
func (s *AssetService) GetAllAssets() ([]models.Asset, error) {
	rows, err := s.db.Query(assetSelect + " ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// GetAssetByID retrieves a single asset by its id.
func (s *AssetService) GetAssetByID(id int64) (models.Asset, error) {
	row := s.db.QueryRow(assetSelect+" WHERE id = ?", id)
	asset, err := scanAsset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Asset{}, ErrAssetNotFound
		}
		return models.Asset{}, err
	}
	return asset, nil
}

// CreateAsset inserts a new asset. The store assigns id and created_at;
// updated_at stays unset until the first update.
func (s *AssetService) CreateAsset(fields map[string]any) (int64, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(models.AssetColumns)), ", ")
	query := fmt.Sprintf(
		"INSERT INTO asset (%s) VALUES (%s)",
		strings.Join(models.AssetColumns, ", "), placeholders,
	)

	stmt, err := s.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	values := make([]any, 0, len(models.AssetColumns))
	for _, column := range models.AssetColumns {
		values = append(values, fields[column])
	}

	res, err := stmt.Exec(values...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	return res.LastInsertId()
}

// UpdateAsset applies only the supplied fields and refreshes updated_at.
// Returns false when no row matched the id. Columns outside the known asset
// schema are ignored.
func (s *AssetService) UpdateAsset(id int64, fields map[string]any) (bool, error) {
	var setClauses []string
	var values []any
	for _, column := range models.AssetColumns {
		if value, ok := fields[column]; ok {
			setClauses = append(setClauses, column+" = ?")
			values = append(values, value)
		}
	}
	if len(setClauses) == 0 {
		return false, errors.New("no columns to update")
	}
	values = append(values, id)

	query := fmt.Sprintf(
		"UPDATE asset SET %s, updated_at = datetime('now') WHERE id = ?",
		strings.Join(setClauses, ", "),
	)
	res, err := s.db.Exec(query, values...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
