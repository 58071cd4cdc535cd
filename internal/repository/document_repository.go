package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
)

// DocumentRepository handles persistence for uploaded PDF documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository instantiates a document repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = "id, university_id, document_type, original_filename, stored_filename, path, academic_year, active, uploaded_at"

// FindLatest returns the most recent active document of the given type for
// a university identified by name.
func (r *DocumentRepository) FindLatest(ctx context.Context, universityName string, docType models.DocumentType) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM uploaded_documents d JOIN universities u ON d.university_id = u.id WHERE LOWER(u.name) = LOWER($1) AND d.document_type = $2 AND d.active = TRUE ORDER BY d.uploaded_at DESC LIMIT 1`,
		prefixColumns("d", documentColumns))
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, universityName, docType); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindCoursesByDestination locates the newest active course catalog whose
// university name matches the given destination, allowing partial matches
// in either direction.
func (r *DocumentRepository) FindCoursesByDestination(ctx context.Context, destination string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM uploaded_documents d JOIN universities u ON d.university_id = u.id WHERE d.document_type = $1 AND d.active = TRUE AND (LOWER(u.name) = LOWER($2) OR LOWER(u.name) LIKE '%%' || LOWER($2) || '%%' OR LOWER($2) LIKE '%%' || LOWER(u.name) || '%%') ORDER BY d.uploaded_at DESC LIMIT 1`,
		prefixColumns("d", documentColumns))
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, models.DocumentCourses, destination); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByID loads a document by identifier.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM uploaded_documents WHERE id = $1`, documentColumns)
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	const query = `INSERT INTO uploaded_documents (id, university_id, document_type, original_filename, stored_filename, path, academic_year, active, uploaded_at) VALUES (:id, :university_id, :document_type, :original_filename, :stored_filename, :path, :academic_year, :active, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// ListByUniversity returns a university's documents with pagination.
func (r *DocumentRepository) ListByUniversity(ctx context.Context, universityID string, docType models.DocumentType, page, pageSize int) ([]models.Document, int, error) {
	base := "FROM uploaded_documents WHERE university_id = $1"
	args := []interface{}{universityID}

	if docType != "" {
		base += fmt.Sprintf(" AND document_type = $%d", len(args)+1)
		args = append(args, docType)
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("SELECT %s %s ORDER BY uploaded_at DESC LIMIT %d OFFSET %d", documentColumns, base, pageSize, offset)
	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	return docs, total, nil
}

// Deactivate soft-deletes a document, scoped to its owning university.
func (r *DocumentRepository) Deactivate(ctx context.Context, id, universityID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE uploaded_documents SET active = FALSE WHERE id = $1 AND university_id = $2`, id, universityID)
	if err != nil {
		return false, fmt.Errorf("deactivate document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deactivate document result: %w", err)
	}
	return affected > 0, nil
}

// DeactivateOthers retires previously active documents of the same type so
// the newest upload becomes the one the advisor reads.
func (r *DocumentRepository) DeactivateOthers(ctx context.Context, universityID string, docType models.DocumentType, keepID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE uploaded_documents SET active = FALSE WHERE university_id = $1 AND document_type = $2 AND id <> $3`, universityID, docType, keepID); err != nil {
		return fmt.Errorf("deactivate previous documents: %w", err)
	}
	return nil
}

func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, part := range parts {
		parts[i] = prefix + "." + part
	}
	return strings.Join(parts, ", ")
}
