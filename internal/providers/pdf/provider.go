package pdf

import (
	"context"
	"io"
)

type Provider interface {
	GenerateTicketConfirmation(ctx context.Context, data TicketConfirmationData) (io.Reader, error)
	GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateTicketConfirmation(ctx context.Context, data TicketConfirmationData) (io.Reader, error) {
	return nil, nil
}

func (p *NoOpProvider) GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error) {
	return nil, nil
}
