package repository

import (
	"context"
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) CreateInquiry(ctx context.Context, in *domain.Inquiry) error {
	in.ID = uuid.NewString()
	in.Status = domain.InquiryStatusNew
	in.CreatedAt = r.now()

	query := `INSERT INTO inquiries (id, name, email, phone, company_name, message, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		in.ID,
		in.Name,
		in.Email,
		nullString(in.Phone),
		nullString(in.CompanyName),
		in.Message,
		in.Status,
		in.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", mapWriteError(err))
	}
	return nil
}

// ListInquiries returns inquiries newest first, optionally narrowed to one status.
func (r *Repository) ListInquiries(ctx context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error) {
	query := `SELECT id, name, email, COALESCE(phone, ''), COALESCE(company_name, ''), message, status, created_at
	          FROM inquiries`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*domain.Inquiry
	for rows.Next() {
		in := &domain.Inquiry{}
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &in.CompanyName, &in.Message, &in.Status, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return inquiries, nil
}

func (r *Repository) UpdateInquiryStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInquiryNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}
	return expectOneRow(res, ErrInquiryNotFound)
}
