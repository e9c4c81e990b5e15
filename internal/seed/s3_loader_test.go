package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, *params.Bucket, *params.Key)
	if out, ok := args.Get(0).(*s3.GetObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Product, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestS3Loader_Load(t *testing.T) {
	p := DefaultCatalog()[0]
	body := gzipLines(t, []string{productLine(t, p)})

	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, "aura-seeds", "catalogue/base.gz").
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil)

	loader := NewS3LoaderWithClient(client, "aura-seeds", zerolog.Nop())
	products, err := loader.Load(context.Background(), "catalogue/base.gz")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
	client.AssertExpectations(t)
}

func TestS3Loader_GetObjectFails(t *testing.T) {
	client := &mockObjectGetter{}
	client.On("GetObject", mock.Anything, "aura-seeds", "missing.gz").Return(nil, errors.New("NoSuchKey"))

	loader := NewS3LoaderWithClient(client, "aura-seeds", zerolog.Nop())
	_, err := loader.Load(context.Background(), "missing.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchKey")
}

func TestFallbackLoader(t *testing.T) {
	fromS3 := []model.Product{{ID: "S3"}}
	fromDisk := []model.Product{{ID: "DISK"}}

	tests := []struct {
		name      string
		s3Enabled bool
		s3Err     error
		want      string
		wantS3Key string
	}{
		{name: "S3 succeeds", s3Enabled: true, want: "S3", wantS3Key: "seeds/base.gz"},
		{name: "S3 fails", s3Enabled: true, s3Err: errors.New("denied"), want: "DISK", wantS3Key: "seeds/base.gz"},
		{name: "S3 disabled", s3Enabled: false, want: "DISK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKey string
			remote := &mockLoader{loadFunc: func(_ context.Context, path string) ([]model.Product, error) {
				gotKey = path
				if tt.s3Err != nil {
					return nil, tt.s3Err
				}
				return fromS3, nil
			}}
			disk := &mockLoader{loadFunc: func(_ context.Context, path string) ([]model.Product, error) {
				assert.Equal(t, "base.gz", path)
				return fromDisk, nil
			}}

			loader := NewFallbackLoader(remote, disk, "seeds/", tt.s3Enabled, zerolog.Nop())
			products, err := loader.Load(context.Background(), "base.gz")
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, tt.want, products[0].ID)
			assert.Equal(t, tt.wantS3Key, gotKey)
		})
	}
}

func TestFallbackLoader_NilS3UsesDisk(t *testing.T) {
	disk := &mockLoader{loadFunc: func(context.Context, string) ([]model.Product, error) {
		return []model.Product{{ID: "DISK"}}, nil
	}}

	products, err := NewFallbackLoader(nil, disk, "seeds/", true, zerolog.Nop()).Load(context.Background(), "base.gz")
	require.NoError(t, err)
	assert.Equal(t, "DISK", products[0].ID)
}
