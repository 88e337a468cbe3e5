package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectGetter is a mock implementation of objectGetter.
type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Book, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Book, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestS3Loader_Load(t *testing.T) {
	body := gzipLines(t, []string{
		`{"title":"Book A","author":"Author A","isbn":"9780000000001","price":15.99}`,
		`{"title":"Book C","author":"Author C","isbn":"9780000000003","price":9.99}`,
	})

	client := new(MockObjectGetter)
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "seed-bucket" && aws.ToString(in.Key) == "catalog/books.jsonl.gz"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil)

	loader := newS3Loader(client, "seed-bucket", zerolog.Nop())

	books, err := loader.Load(context.Background(), "catalog/books.jsonl.gz")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Book C", books[1].Title)
	client.AssertExpectations(t)
}

func TestS3Loader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		output   *s3.GetObjectOutput
		err      error
		errMatch string
	}{
		{
			name:     "Get object fails",
			err:      errors.New("NoSuchKey"),
			errMatch: "failed to get object from S3",
		},
		{
			name:     "Body is not gzipped",
			output:   &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("plain")))},
			errMatch: "failed to create gzip reader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockObjectGetter)
			if tt.output != nil {
				client.On("GetObject", mock.Anything, mock.Anything).Return(tt.output, nil)
			} else {
				client.On("GetObject", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			loader := newS3Loader(client, "seed-bucket", zerolog.Nop())

			books, err := loader.Load(context.Background(), "books.gz")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
			assert.Nil(t, books)
		})
	}
}

func TestFallbackLoader(t *testing.T) {
	s3Books := []model.Book{{Title: "From S3", ISBN: "1"}}
	localBooks := []model.Book{{Title: "From disk", ISBN: "2"}}

	tests := []struct {
		name      string
		s3Enabled bool
		s3Nil     bool
		s3Err     error
		expected  string
		expectS3  bool
	}{
		{name: "S3 succeeds", s3Enabled: true, expected: "From S3", expectS3: true},
		{name: "S3 fails falls back to local", s3Enabled: true, s3Err: errors.New("S3 connection failed"), expected: "From disk", expectS3: true},
		{name: "S3 disabled", s3Enabled: false, expected: "From disk"},
		{name: "S3 loader nil", s3Enabled: true, s3Nil: true, expected: "From disk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s3Called := false
			var remote Loader = &mockLoader{
				loadFunc: func(ctx context.Context, path string) ([]model.Book, error) {
					s3Called = true
					assert.Equal(t, "catalog/books.gz", path, "S3 key should have prefix")
					if tt.s3Err != nil {
						return nil, tt.s3Err
					}
					return s3Books, nil
				},
			}
			if tt.s3Nil {
				remote = nil
			}
			file := &mockLoader{
				loadFunc: func(ctx context.Context, path string) ([]model.Book, error) {
					assert.Equal(t, "books.gz", path, "local path should not have prefix")
					return localBooks, nil
				},
			}

			fallback := NewFallbackLoader(remote, file, "catalog/", tt.s3Enabled, zerolog.Nop())

			books, err := fallback.Load(context.Background(), "books.gz")
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, tt.expected, books[0].Title)
			assert.Equal(t, tt.expectS3, s3Called)
		})
	}
}
