package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/reader/model"
	"library-backend/pkg/cache"
)

type fakeRepo struct {
	created     *model.ReaderParams
	createErr   error
	updated     *model.ReaderParams
	deletedID   int64
	deleteErr   error
	reader      *model.Reader
	readerErr   error
	searchQuery string
}

func (f *fakeRepo) GetReaderByID(ctx context.Context, id int64) (*model.Reader, error) {
	return f.reader, f.readerErr
}

func (f *fakeRepo) SearchReaders(ctx context.Context, search string) ([]model.ReaderSearchRow, error) {
	f.searchQuery = search
	return nil, nil
}

func (f *fakeRepo) CreateReader(ctx context.Context, params model.ReaderParams) (int64, error) {
	f.created = &params
	return 1, f.createErr
}

func (f *fakeRepo) UpdateReader(ctx context.Context, id int64, params model.ReaderParams) error {
	f.updated = &params
	return nil
}

func (f *fakeRepo) DeleteReader(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeCache struct {
	deleted []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func TestAddReaderNormalizesBlankFields(t *testing.T) {
	repo := &fakeRepo{}
	fc := &fakeCache{}
	svc := NewService(repo, fc)

	err := svc.AddReader(context.Background(), model.ReaderRequest{
		FIO:    "  Иванов Иван Иванович ",
		Post:   "   ",
		Degree: "к.т.н.",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, "Иванов Иван Иванович", repo.created.FIO)
	assert.Nil(t, repo.created.Post, "blank post must be stored as NULL")
	require.NotNil(t, repo.created.Degree)
	assert.Equal(t, "к.т.н.", *repo.created.Degree)

	assert.Equal(t, []string{cache.KeyDashboardStats}, fc.deleted)
}

func TestAddReaderRequiresFIO(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	err := svc.AddReader(context.Background(), model.ReaderRequest{Post: "инженер"})
	assert.ErrorIs(t, err, model.ErrFIORequired)
	assert.Nil(t, repo.created)
}

func TestAddReaderPropagatesDuplicate(t *testing.T) {
	repo := &fakeRepo{createErr: model.ErrReaderAlreadyExists}
	svc := NewService(repo, nil)

	err := svc.AddReader(context.Background(), model.ReaderRequest{FIO: "Иванов"})
	assert.ErrorIs(t, err, model.ErrReaderAlreadyExists)
}

func TestDeleteReaderPropagatesGuard(t *testing.T) {
	repo := &fakeRepo{deleteErr: model.ErrReaderHasActiveLoans}
	fc := &fakeCache{}
	svc := NewService(repo, fc)

	err := svc.DeleteReader(context.Background(), 5)
	assert.ErrorIs(t, err, model.ErrReaderHasActiveLoans)
	assert.Empty(t, fc.deleted)
}

func TestGetReaderFormatsResponse(t *testing.T) {
	post := "доцент"
	repo := &fakeRepo{reader: &model.Reader{ID: 2, FIO: "Петров П.П.", Post: &post}}
	svc := NewService(repo, nil)

	resp, err := svc.GetReader(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Петров П.П.", resp.FIO)
	assert.Equal(t, "доцент", resp.Post)
	assert.Equal(t, "", resp.Degree)
}

func TestSearchReadersTrimsQuery(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	_, err := svc.SearchReaders(context.Background(), " Ива ")
	require.NoError(t, err)
	assert.Equal(t, "Ива", repo.searchQuery)
}
