package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type TicketConfirmationData struct {
	BusinessName string
	MemberName   string
	EventName    string
	EventVenue   string
	EventDate    string

	ClaimID string
	Items   []TicketItem
}

type TicketItem struct {
	PassType string
	Quantity int
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateTicketConfirmation(ctx context.Context, data TicketConfirmationData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Ticket confirmation", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Confirmation: "+data.ClaimID, props.Text{Top: 0}),
			text.New("Event: "+data.EventName, props.Text{Top: 4}),
			text.New("Venue: "+data.EventVenue, props.Text{Top: 8}),
			text.New("Date: "+data.EventDate, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New(data.BusinessName, props.Text{Style: fontstyle.Bold}),
			text.New("Attn: "+data.MemberName, props.Text{Top: 5}),
		),
	)

	m.AddRow(10,
		text.NewCol(9, "Pass", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(10,
			text.NewCol(9, item.PassType, props.Text{Size: 9}),
			text.NewCol(3, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(15,
		text.NewCol(12, "Present this confirmation at registration.", props.Text{
			Size: 9,
			Top:  5,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
