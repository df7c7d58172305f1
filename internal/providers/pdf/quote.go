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

type QuoteData struct {
	BusinessName string
	PreparedFor  string
	QuoteDate    string

	Items []QuoteItem

	Subtotal string
	Discount string
	Total    string
	Savings  string
}

type QuoteItem struct {
	Name  string
	Price string
}

func (p *PDFProvider) GenerateQuote(ctx context.Context, data QuoteData) (io.Reader, error) {
	cfg := config.NewBuilder().Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Membership benefits quote", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New(data.BusinessName, props.Text{Style: fontstyle.Bold}),
			text.New("Prepared for: "+data.PreparedFor, props.Text{Top: 5}),
			text.New("Date: "+data.QuoteDate, props.Text{Top: 9}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(9, "Benefit", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(10,
			text.NewCol(9, item.Name, props.Text{Size: 9}),
			text.NewCol(3, item.Price, props.Text{Size: 9, Align: align.Right}),
		)
	}

	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", data.Subtotal, false},
		{"Discount", data.Discount, false},
		{"Total", data.Total, true},
	}
	for _, r := range rows {
		style := props.Text{Size: 9, Align: align.Right}
		if r.bold {
			style.Style = fontstyle.Bold
		}
		m.AddRow(10,
			col.New(6),
			text.NewCol(3, r.label, props.Text{Size: 9}),
			text.NewCol(3, r.value, style),
		)
	}

	if data.Savings != "" {
		m.AddRow(10,
			text.NewCol(12, fmt.Sprintf("You save %s with your membership tier.", data.Savings), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
