package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgerror"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkguid"
)

const defaultMaxBytes = 10 << 20

type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (entity.StoredFile, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.CleanupEvent) error
}

type Metrics interface {
	ObserveValidation(outcome string, seconds float64)
	ObserveUploadSize(size int64)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store         Store
	Events        EventPublisher
	Metrics       Metrics
	Clock         Clock
	UID           pkguid.StringID
	RunID         pkguid.NumberID
	MaxBytes      int64
	Encodings     []string
	DefaultPolicy entity.Policy
}

type Usecase struct {
	store         Store
	events        EventPublisher
	metrics       Metrics
	clock         Clock
	uid           pkguid.StringID
	runID         pkguid.NumberID
	maxBytes      int64
	encodings     []string
	defaultPolicy entity.Policy
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	maxBytes := dep.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	encodings := dep.Encodings
	if len(encodings) == 0 {
		encodings = defaultEncodings
	}

	defaultPolicy := dep.DefaultPolicy
	if defaultPolicy == "" {
		defaultPolicy = entity.PolicyCheck
	}

	return &Usecase{
		store:         dep.Store,
		events:        dep.Events,
		metrics:       dep.Metrics,
		clock:         clock,
		uid:           dep.UID,
		runID:         dep.RunID,
		maxBytes:      maxBytes,
		encodings:     encodings,
		defaultPolicy: defaultPolicy,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (u *Usecase) ValidateUpload(ctx context.Context, name string, r io.Reader, policy entity.Policy) (ValidateResult, error) {
	if u.store == nil || u.uid == nil {
		return ValidateResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if name == "" {
		return ValidateResult{}, pkgerror.NewInvalidInput(errors.New("file name is required"))
	}

	stored, err := u.store.Save(ctx, name, r)
	if err != nil {
		return ValidateResult{}, normalizeErr(err)
	}
	defer u.scheduleCleanup(ctx, stored)

	if u.metrics != nil {
		u.metrics.ObserveUploadSize(stored.Size)
	}

	return u.Validate(ctx, ValidateInput{
		Path:     stored.Path,
		FileName: stored.Name,
		Policy:   policy,
	})
}

func (u *Usecase) Validate(ctx context.Context, input ValidateInput) (ValidateResult, error) {
	if u.runID == nil {
		return ValidateResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if input.Path == "" {
		return ValidateResult{}, pkgerror.NewInvalidInput(errors.New("file path is required"))
	}

	policy := input.Policy
	if policy == "" {
		policy = u.defaultPolicy
	}
	switch policy {
	case entity.PolicyCheck, entity.PolicyRename, entity.PolicyKeepFirst:
	default:
		msg := fmt.Sprintf("Unknown duplicate policy %q. Use check, rename or keep_first.", policy)
		return ValidateResult{}, pkgerror.NewValidation(msg, pkgerror.CodeInvalidInput)
	}

	maxBytes := input.MaxBytes
	if maxBytes <= 0 {
		maxBytes = u.maxBytes
	}

	name := input.FileName
	if name == "" {
		name = filepath.Base(input.Path)
	}

	started := u.clock.Now()
	meta, err := u.run(input.Path, name, maxBytes, policy)
	elapsed := u.clock.Now().Sub(started).Seconds()

	if err != nil {
		outcome := outcomeOf(err)
		u.observe(outcome, elapsed)
		slog.WarnContext(ctx, "validation failed", "file", name, "policy", policy, "reason", outcome, "error", err)
		return ValidateResult{}, mapFailure(err)
	}

	u.observe("ok", elapsed)

	return ValidateResult{
		RunID:    u.runID.Generate(),
		Policy:   policy,
		Metadata: meta,
	}, nil
}

func (u *Usecase) run(path, name string, maxBytes int64, policy entity.Policy) (entity.Metadata, error) {
	size, err := preflight(path, maxBytes)
	if err != nil {
		return entity.Metadata{}, err
	}

	reader, format, err := readerFor(path, u.encodings)
	if err != nil {
		return entity.Metadata{}, err
	}

	table, encoding, err := reader.read(path, policy)
	if err != nil {
		return entity.Metadata{}, err
	}

	warnings, err := inspect(table)
	if err != nil {
		return entity.Metadata{}, err
	}

	return entity.Metadata{
		FileName:    name,
		Size:        entity.HumanSize(size),
		SizeBytes:   size,
		Rows:        table.Rows(),
		Columns:     len(table.Columns),
		ColumnNames: table.ColumnNames(),
		Warnings:    warnings,
		Encoding:    encoding,
		Format:      format,
	}, nil
}

func (u *Usecase) scheduleCleanup(ctx context.Context, stored entity.StoredFile) {
	if u.events == nil {
		return
	}

	event := entity.CleanupEvent{
		EventID: u.uid.Generate(),
		Token:   stored.Token,
		Path:    stored.Path,
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish cleanup event", "event_id", event.EventID, "token", event.Token, "error", err)
	}
}

func (u *Usecase) observe(outcome string, seconds float64) {
	if u.metrics == nil {
		return
	}
	u.metrics.ObserveValidation(outcome, seconds)
}

func outcomeOf(err error) string {
	if kind, ok := entity.KindOf(err); ok {
		return kind.String()
	}

	return "internal"
}

func mapFailure(err error) error {
	var failure *entity.Failure
	if !errors.As(err, &failure) {
		return normalizeErr(err)
	}

	switch failure.Kind {
	case entity.FailureNotFound:
		return pkgerror.NewValidation(failure.Message, pkgerror.CodeNotFound)
	case entity.FailureEmptyFile, entity.FailureEmptyHeader:
		return pkgerror.NewValidation(failure.Message, pkgerror.CodeInvalidFormat)
	case entity.FailureTooLarge:
		return pkgerror.NewValidation(failure.Message, pkgerror.CodeTooLarge)
	case entity.FailureUnsupportedFormat:
		return pkgerror.NewValidation(failure.Message, pkgerror.CodeUnsupportedMedia)
	case entity.FailureDuplicateColumns:
		return pkgerror.NewBusiness(failure.Message, pkgerror.CodeConflict)
	case entity.FailureEncoding, entity.FailureNoRows, entity.FailureRead:
		return pkgerror.NewValidation(failure.Message, pkgerror.CodeInvalidInput)
	default:
		return pkgerror.NewServer(err)
	}
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}

	return pkgerror.NewServer(err)
}
