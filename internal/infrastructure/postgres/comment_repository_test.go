package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

func testComment() *model.Comment {
	now := time.Now()
	return &model.Comment{
		ID:        uuid.New(),
		VideoID:   uuid.New(),
		AuthorID:  uuid.New(),
		Body:      "nice video",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCommentRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		mockErr error
		wantErr error
	}{
		{
			name:    "successful creation",
			mockErr: nil,
			wantErr: nil,
		},
		{
			name:    "video absent",
			mockErr: &pgconn.PgError{Code: "23503", ConstraintName: "comments_video_id_fkey"},
			wantErr: repository.ErrVideoNotFound,
		},
		{
			name:    "author absent",
			mockErr: &pgconn.PgError{Code: "23503", ConstraintName: "comments_author_id_fkey"},
			wantErr: repository.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock pool: %v", err)
			}
			defer mock.Close()

			comment := testComment()
			exp := mock.ExpectExec("INSERT INTO comments").
				WithArgs(comment.ID, comment.VideoID, comment.AuthorID, comment.Body, pgxmock.AnyArg(), pgxmock.AnyArg())
			if tt.mockErr != nil {
				exp.WillReturnError(tt.mockErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			repo := NewCommentRepository(mock)
			err = repo.Create(context.Background(), comment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommentRepository_ListByVideo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	videoID := uuid.New()
	c1, c2 := testComment(), testComment()
	c1.VideoID, c2.VideoID = videoID, videoID

	rows := pgxmock.NewRows([]string{"id", "video_id", "author_id", "body", "created_at", "updated_at"}).
		AddRow(c1.ID, c1.VideoID, c1.AuthorID, c1.Body, c1.CreatedAt, c1.UpdatedAt).
		AddRow(c2.ID, c2.VideoID, c2.AuthorID, c2.Body, c2.CreatedAt, c2.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM comments").
		WithArgs(videoID).
		WillReturnRows(rows)

	repo := NewCommentRepository(mock)
	comments, err := repo.ListByVideo(context.Background(), videoID)
	if err != nil {
		t.Fatalf("ListByVideo() unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
}

func TestCommentRepository_Update(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"updated", 1, nil},
		{"comment absent", 0, repository.ErrCommentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock pool: %v", err)
			}
			defer mock.Close()

			comment := testComment()
			mock.ExpectExec("UPDATE comments").
				WithArgs(comment.ID, comment.Body, pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			repo := NewCommentRepository(mock)
			err = repo.Update(context.Background(), comment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommentRepository_DeleteByAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	authorID := uuid.New()
	mock.ExpectExec("DELETE FROM comments").
		WithArgs(authorID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	repo := NewCommentRepository(mock)
	if err := repo.DeleteByAuthor(context.Background(), authorID); err != nil {
		t.Fatalf("DeleteByAuthor() unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
