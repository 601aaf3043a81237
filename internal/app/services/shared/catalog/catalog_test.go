package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"koos-service/internal/app/config"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/metrics"
	"koos-service/internal/pkg/questionnaires"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const womacDocument = `
womac:
  name: WOMAC
  sections:
    Pain: [P1, P2]
  interpretation:
    0-100: Any
`

type stubSource struct {
	mu       sync.Mutex
	catalogs []*questionnaires.Catalog
	errs     []error
	calls    int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) (*questionnaires.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := int(atomic.AddInt32(&s.calls, 1)) - 1
	if i >= len(s.catalogs) {
		i = len(s.catalogs) - 1
	}
	return s.catalogs[i], s.errs[i]
}

func mustParse(t *testing.T, document string) *questionnaires.Catalog {
	t.Helper()
	catalog, err := questionnaires.ParseCatalog([]byte(document))
	require.NoError(t, err)
	return catalog
}

func TestProvider_InitialLoad(t *testing.T) {
	provider, err := NewProvider(context.Background(), NewEmbeddedSource(), zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)

	assert.Equal(t, []string{questionnaires.HOOS, questionnaires.KOOS}, provider.List())
	assert.Equal(t, constvars.CatalogSourceEmbedded, provider.SourceName())

	config, ok := provider.Get("KOOS")
	require.True(t, ok)
	assert.Equal(t, "KOOS", config.Name)

	_, ok = provider.Get("womac")
	assert.False(t, ok)
}

func TestProvider_InitialLoadFailure(t *testing.T) {
	source := &stubSource{catalogs: []*questionnaires.Catalog{nil}, errs: []error{errors.New("unreachable")}}

	provider, err := NewProvider(context.Background(), source, zap.NewNop(), metrics.New(prometheus.NewRegistry()))

	assert.Nil(t, provider)
	assert.EqualError(t, err, "unreachable")
}

func TestProvider_ReloadKeepsPreviousCatalogOnFailure(t *testing.T) {
	first := questionnaires.Default()
	second := mustParse(t, womacDocument)
	source := &stubSource{
		catalogs: []*questionnaires.Catalog{first, nil, second},
		errs:     []error{nil, errors.New("broken document"), nil},
	}

	provider, err := NewProvider(context.Background(), source, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)
	assert.Same(t, first, provider.Current())

	_, err = provider.Reload(context.Background())
	assert.Error(t, err)
	assert.Same(t, first, provider.Current())

	reloaded, err := provider.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, reloaded)
	assert.Equal(t, []string{"womac"}, provider.List())
}

func TestProvider_ConcurrentReadsDuringReload(t *testing.T) {
	source := &stubSource{
		catalogs: []*questionnaires.Catalog{questionnaires.Default()},
		errs:     []error{nil},
	}
	provider, err := NewProvider(context.Background(), source, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, ok := provider.Get(questionnaires.KOOS)
			assert.True(t, ok)
		}()
		go func() {
			defer wg.Done()
			_, err := provider.Reload(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestProvider_StartRefresher(t *testing.T) {
	source := &stubSource{
		catalogs: []*questionnaires.Catalog{questionnaires.Default()},
		errs:     []error{nil},
	}
	provider, err := NewProvider(context.Background(), source, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)

	stop := provider.StartRefresher(5*time.Millisecond, time.Second)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&source.calls) >= 3
	}, time.Second, 5*time.Millisecond)

	stop()
	stop()
	calls := atomic.LoadInt32(&source.calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, atomic.LoadInt32(&source.calls))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid document", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(womacDocument), 0o600))

		catalog, err := NewFileSource(path).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"womac"}, catalog.IDs())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "missing.yaml")).Load(context.Background())

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid document", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("womac:\n  name: WOMAC\n"), 0o600))

		_, err := NewFileSource(path).Load(context.Background())
		assert.ErrorIs(t, err, questionnaires.ErrInvalidCatalog)
	})
}

func TestMinioSource(t *testing.T) {
	t.Run("reads the object", func(t *testing.T) {
		source := &minioSource{
			bucketName: "questionnaires",
			objectName: "catalog.yaml",
			open: func(ctx context.Context) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(womacDocument)), nil
			},
		}

		catalog, err := source.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"womac"}, catalog.IDs())
		assert.Equal(t, "minio:questionnaires/catalog.yaml", source.Name())
	})

	t.Run("read failure", func(t *testing.T) {
		source := &minioSource{
			bucketName: "questionnaires",
			objectName: "catalog.yaml",
			open: func(ctx context.Context) (io.ReadCloser, error) {
				return io.NopCloser(iotest.ErrReader(errNoSuchKey)), nil
			},
		}

		_, err := source.Load(context.Background())
		assert.ErrorIs(t, err, errNoSuchKey)
	})
}

var errNoSuchKey = errors.New("specified key does not exist")

func TestDocumentsToCatalog(t *testing.T) {
	catalog, err := documentsToCatalog([]questionnaireDocument{
		{
			ID:   "KOOS",
			Name: "KOOS",
			Sections: []sectionDocument{
				{Name: "Pain", Questions: []string{"P1"}},
				{Name: "Symptoms"},
			},
			Interpretation: []bandDocument{{Low: 0, High: 100, Description: "Any"}},
		},
	})
	require.NoError(t, err)

	config, ok := catalog.Get("koos")
	require.True(t, ok)
	require.Len(t, config.Sections, 2)
	assert.Equal(t, "Pain", config.Sections[0].Name)
	assert.Equal(t, "Symptoms", config.Sections[1].Name)
	assert.NotNil(t, config.Sections[1].Questions)
	assert.Equal(t, "Any", config.Interpretation.Interpret(50))

	t.Run("no documents", func(t *testing.T) {
		_, err := documentsToCatalog(nil)
		assert.ErrorIs(t, err, questionnaires.ErrEmptyCatalog)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := documentsToCatalog([]questionnaireDocument{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}})
		assert.ErrorIs(t, err, questionnaires.ErrInvalidCatalog)
	})

	t.Run("missing sections", func(t *testing.T) {
		_, err := documentsToCatalog([]questionnaireDocument{
			{ID: "a", Name: "A", Interpretation: []bandDocument{}},
		})
		assert.ErrorIs(t, err, questionnaires.ErrInvalidCatalog)
		assert.ErrorContains(t, err, "sections are missing")
	})

	t.Run("missing interpretation", func(t *testing.T) {
		_, err := documentsToCatalog([]questionnaireDocument{
			{ID: "a", Name: "A", Sections: []sectionDocument{{Name: "Pain", Questions: []string{"P1"}}}},
		})
		assert.ErrorIs(t, err, questionnaires.ErrInvalidCatalog)
		assert.ErrorContains(t, err, "interpretation is missing")
	})

	t.Run("duplicate section names", func(t *testing.T) {
		_, err := documentsToCatalog([]questionnaireDocument{{
			ID:             "a",
			Name:           "A",
			Sections:       []sectionDocument{{Name: "Pain", Questions: []string{"P1"}}, {Name: "Pain", Questions: []string{"P2"}}},
			Interpretation: []bandDocument{},
		}})
		assert.ErrorIs(t, err, questionnaires.ErrInvalidCatalog)
		assert.ErrorContains(t, err, "duplicate section")
	})
}

func TestNewSource(t *testing.T) {
	source, err := NewSource(config.AppCatalog{Source: constvars.CatalogSourceEmbedded}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, constvars.CatalogSourceEmbedded, source.Name())

	source, err = NewSource(config.AppCatalog{Source: constvars.CatalogSourceFile, FilePath: "q.yaml"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:q.yaml", source.Name())

	for _, name := range []string{constvars.CatalogSourceMinio, constvars.CatalogSourceMongo, "s3"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewSource(config.AppCatalog{Source: name}, nil, nil)
			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
		})
	}
}
