package catalog

import (
	"context"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/metrics"
	"koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Provider keeps the catalog currently in use. Readers never block: a reload
// builds a complete new catalog and swaps the pointer, and a failed reload
// leaves the previous catalog in place.
type Provider struct {
	source  contracts.CatalogSource
	log     *zap.Logger
	metrics *metrics.Metrics
	current atomic.Pointer[questionnaires.Catalog]
	// reloadMu serialises reloads so two concurrent loads cannot race the swap
	reloadMu sync.Mutex
}

// NewProvider performs the initial load. The service refuses to start on an
// unusable catalog.
func NewProvider(ctx context.Context, source contracts.CatalogSource, log *zap.Logger, m *metrics.Metrics) (*Provider, error) {
	p := &Provider{source: source, log: log, metrics: m}
	if _, err := p.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) Get(questionnaireID string) (*scoring.Config, bool) {
	return p.Current().Get(questionnaireID)
}

func (p *Provider) List() []string {
	return p.Current().IDs()
}

func (p *Provider) Current() *questionnaires.Catalog {
	return p.current.Load()
}

func (p *Provider) SourceName() string {
	return p.source.Name()
}

func (p *Provider) Reload(ctx context.Context) (*questionnaires.Catalog, error) {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()

	catalog, err := p.source.Load(ctx)
	if err != nil {
		p.metrics.ObserveCatalogReload(err, 0)
		p.log.Error("catalog.Provider.Reload failed, keeping previous catalog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCatalogSourceKey, p.source.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	p.current.Store(catalog)
	p.metrics.ObserveCatalogReload(nil, catalog.Len())
	p.log.Info("catalog.Provider.Reload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCatalogSourceKey, p.source.Name()),
		zap.Int(constvars.LoggingCatalogSizeKey, catalog.Len()),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	return catalog, nil
}

// StartRefresher reloads the catalog every interval until the returned stop
// function is called. Failures are logged by Reload and otherwise ignored.
func (p *Provider) StartRefresher(interval time.Duration, timeout time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loadCtx, loadCancel := context.WithTimeout(ctx, timeout)
				p.Reload(loadCtx)
				loadCancel()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
