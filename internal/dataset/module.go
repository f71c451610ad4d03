package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/event"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/inbound"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/store"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/usecase"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgconfig"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgmetric"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgrouter"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgroutine"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Metrics   *pkgmetric.Metrics
	Context   context.Context
	UID       pkguid.StringID
	RunID     pkguid.NumberID
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.UID == nil {
		dep.UID = pkguid.NewUUID()
	}

	if dep.RunID == nil {
		runID, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.RunID = runID
	}

	tempDir := dep.Config.GetString("modules.dataset.temp_dir")
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "datavalidator")
	}

	storage, err := store.NewTempStore(dep.Context, store.TempConfig{
		Dir:    tempDir,
		TTL:    dep.Config.GetDuration("modules.dataset.temp_ttl"),
		Names:  pkguid.NewNanoID(16),
		Runner: dep.Goroutine,
	})
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(512)
	janitor := event.NewJanitor(bus, event.FileCleaner{Store: storage}, event.JanitorConfig{
		Workers:     int(dep.Config.GetInt("modules.dataset.janitor_workers")),
		MaxRetries:  int(dep.Config.GetInt("modules.dataset.janitor_retries")),
		BaseBackoff: dep.Config.GetDuration("modules.dataset.janitor_backoff"),
	})
	janitor.Start()

	var metrics usecase.Metrics
	if dep.Metrics != nil {
		metrics = dep.Metrics
		dep.Metrics.TrackTempFiles(func() float64 {
			return float64(storage.Len())
		})
	}

	encodings := make([]string, 0, 4)
	for _, name := range dep.Config.GetArray("modules.dataset.encodings") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		encodings = append(encodings, name)
	}

	defaultPolicy, _ := entity.ParsePolicy(dep.Config.GetString("modules.dataset.default_policy"))

	uc := usecase.New(usecase.Dependency{
		Store:         storage,
		Events:        bus,
		Metrics:       metrics,
		UID:           dep.UID,
		RunID:         dep.RunID,
		MaxBytes:      dep.Config.GetInt("modules.dataset.max_file_mb") << 20,
		Encodings:     encodings,
		DefaultPolicy: defaultPolicy,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return func(ctx context.Context) error {
		if err := janitor.Stop(ctx); err != nil {
			return err
		}

		return storage.Close()
	}, nil
}
