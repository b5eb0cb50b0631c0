// =============================================================================
// Cart Parser - Cart Parser Module
// =============================================================================
//
// This module orchestrates parsing a single cart file, from reading the raw
// text to producing the item list and total.
//
// PARSING PIPELINE:
//   1. Read the raw text through the FileReader
//   2. Validate the text against the schema
//   3. On any validation error: log every error and fail with
//      *ValidationFailedError (no partial result)
//   4. Convert every data row with the line parser
//   5. Assign a fresh identifier to every item
//   6. Sum price * quantity into the total
//
// CONCURRENCY:
//   A Parser only holds its collaborators and never mutates them, so a single
//   Parser may be shared between goroutines.
//
// =============================================================================

package cart

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/logger"
	"github.com/ginjaninja78/cart-parser/internal/schema"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// FileReader returns the raw text stored at path.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// FileReaderFunc adapts a function to FileReader.
type FileReaderFunc func(path string) (string, error)

// ReadFile calls f(path).
func (f FileReaderFunc) ReadFile(path string) (string, error) {
	return f(path)
}

// IDGenerator returns a new unique, opaque identifier on every call.
type IDGenerator func() string

// UUIDGenerator generates random (version 4) UUIDs.
func UUIDGenerator() string {
	return uuid.NewString()
}

// =============================================================================
// PARSER STRUCTURE
// =============================================================================

// Parser turns cart files into Results.
type Parser struct {
	reader      FileReader
	schema      *schema.Schema
	validator   *validation.Validator
	newID       IDGenerator
	defaultPath string
	logger      *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSchema replaces the cart schema.
func WithSchema(s *schema.Schema) Option {
	return func(p *Parser) {
		if s != nil {
			p.schema = s
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(p *Parser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// WithDefaultPath sets the path read when Parse is given an empty path.
func WithDefaultPath(path string) Option {
	return func(p *Parser) { p.defaultPath = path }
}

// WithLogger sets the logger validation errors are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Parser reading files through reader.
func New(reader FileReader, opts ...Option) *Parser {
	p := &Parser{
		reader: reader,
		schema: schema.Cart,
		newID:  UUIDGenerator,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.validator = validation.NewValidator(p.schema)
	return p
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Parse reads, validates and converts the cart file at path. An empty path
// means the default path.
func (p *Parser) Parse(path string) (*Result, error) {
	return p.ParseContext(context.Background(), path)
}

// ParseContext is Parse with a context checked before each stage.
//
// RETURNS:
//   - The parsed cart on success.
//   - The reader's error unchanged when the file cannot be read.
//   - A *ValidationFailedError when validation reports any error.
func (p *Parser) ParseContext(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		path = p.defaultPath
	}
	if path == "" {
		return nil, ErrNoSource
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.ParseText(text)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "cart parsed",
		slog.String("path", path),
		slog.Int("items", len(result.Items)),
		slog.Float64("total", result.Total),
	)

	return result, nil
}

// ParseText validates and converts raw cart text.
func (p *Parser) ParseText(text string) (*Result, error) {
	if errs := p.Validate(text); len(errs) > 0 {
		for _, e := range errs {
			p.logger.Error(e.Message,
				slog.String("type", string(e.Type)),
				slog.Int("row", e.Row),
				slog.Int("column", e.Column),
			)
		}
		return nil, &ValidationFailedError{Errors: errs}
	}

	data := csvparser.Parse(text)
	items := make([]Item, 0, len(data.Rows))

	for _, row := range data.Rows {
		line := p.ParseLine(row.Line)
		items = append(items, Item{
			ID:       p.newID(),
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	return &Result{
		Items: items,
		Total: CalcTotal(items),
	}, nil
}

// Validate checks text against the parser's schema without converting it.
func (p *Parser) Validate(text string) []validation.ValidationError {
	return p.validator.Validate(text)
}
