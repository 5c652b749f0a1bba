package repositories

import (
	"context"
	"fmt"

	"apix/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps documents in the confirmation_documents table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save upserts the document; the latest write for a key wins.
func (s *PostgresStore) Save(ctx context.Context, key string, content []byte) error {
	doc := &models.Document{
		ClaveRastreo: key,
		ContentType:  pdfContentType,
		Content:      content,
		Size:         len(content),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave_rastreo"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "content", "size", "updated_at"}),
	}).Create(doc).Error
	if err != nil {
		return fmt.Errorf("save document %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
