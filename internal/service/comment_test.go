package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docshare/internal/model"
	repoMocks "docshare/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()
	withFixedNow(t, time.Date(2023, 11, 14, 22, 30, 0, 0, time.UTC))

	tests := []struct {
		name       string
		documentID int64
		content    string
		setupMocks func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name:       "happy path",
			documentID: 1,
			content:    "  Ótimo documento!  ",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, int64(1)).Return(&model.Document{ID: 1}, nil)
				mComments.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
					return c.DocumentID == 1 &&
						c.Content == "Ótimo documento!" &&
						c.CreatedAt == "2023-11-14T22:30:00Z"
				})).Return(&model.Comment{ID: 5, DocumentID: 1, Content: "Ótimo documento!"}, nil)
			},
		},
		{
			name:       "empty content is a silent no-op",
			documentID: 1,
			content:    "   ",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrEmptyContent,
		},
		{
			name:       "unknown document",
			documentID: 999999,
			content:    "olá",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, int64(999999)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "document lookup error",
			documentID: 2,
			content:    "olá",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, int64(2)).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mComments := new(repoMocks.MockCommentRepository)
			mDocs := new(repoMocks.MockDocumentRepository)
			svc := NewCommentService(mComments, mDocs)

			tt.setupMocks(mComments, mDocs)

			comment, err := svc.Add(ctx, tt.documentID, tt.content)

			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, ErrEmptyContent) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, comment)
			}

			mComments.AssertExpectations(t)
			mDocs.AssertExpectations(t)
		})
	}
}

func TestCommentService_ListForDocument(t *testing.T) {
	ctx := context.Background()
	mComments := new(repoMocks.MockCommentRepository)
	svc := NewCommentService(mComments, nil)

	t.Run("returns comments newest first", func(t *testing.T) {
		mComments.On("ListForDocument", ctx, int64(1)).Return([]model.Comment{
			{ID: 2, DocumentID: 1, Content: "segundo"},
			{ID: 1, DocumentID: 1, Content: "primeiro"},
		}, nil).Once()

		items, err := svc.ListForDocument(ctx, 1)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "segundo", items[0].Content)
	})

	t.Run("unknown document yields empty list", func(t *testing.T) {
		mComments.On("ListForDocument", ctx, int64(999999)).Return([]model.Comment{}, nil).Once()

		items, err := svc.ListForDocument(ctx, 999999)

		assert.NoError(t, err)
		assert.Len(t, items, 0)
	})

	mComments.AssertExpectations(t)
}
