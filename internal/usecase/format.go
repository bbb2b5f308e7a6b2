package usecase

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/ragingtiger/amznbot/pkg/tmplx"
	"github.com/spf13/cast"
)

const messageTemplate = `
{{- define "product" -}}
*{{.ID}}*: ` + "`{{default \"N/A\" .FormattedPrice}}`" + ` {{escape .Title}} | SalesRank: {{rank .SalesRank}} | Availability: {{escape (default "N/A" .Availability)}} |<{{.DetailURL}}|link>
{{- end -}}

{{- define "change" -}}
{{template "product" .Product}} (was ` + "`{{.Previous}}`" + `){{with .Delta}} {{.}}{{end}}
{{- end -}}

{{- define "startup" -}}
*AMZNBOT RESTARTING ... INITIAL PRICES @ {{.Time}}:*
{{- range .Products}}
{{template "product" .}}
{{- end}}
{{- end -}}

{{- define "update" -}}
*| Update: {{.Time}} |*
{{- range .Notices}}
{{template "change" .}}
{{- end}}
{{- end -}}
`

var messages = tmplx.MustParse("messages", messageTemplate,
	tmplx.WithTemplateFunc("rank", rankFunc),
	tmplx.WithValidate("update", updateData{
		Time:    time.Unix(0, 0).UTC().Format(time.ANSIC),
		Notices: []ChangeNotice{{Product: models.Product{ID: "B000000000", FormattedPrice: "$1.00"}, Previous: "$2.00"}},
	}, func(buf *bytes.Buffer) error {
		if !strings.HasPrefix(buf.String(), "*| Update: ") {
			return errors.New("update message must start with the update header")
		}
		return nil
	}),
)

type startupData struct {
	Time     string
	Products []models.Product
}

type updateData struct {
	Time    string
	Notices []ChangeNotice
}

func rankFunc(rank *int) string {
	if rank == nil {
		return "N/A"
	}
	return cast.ToString(*rank)
}

// FormatProduct renders the one line summary of a product.
func FormatProduct(p models.Product) (string, error) {
	buf, err := messages.RenderTemplate("product", p)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func FormatStartup(at time.Time, products []models.Product) (string, error) {
	buf, err := messages.RenderTemplate("startup", startupData{
		Time:     at.Format(time.ANSIC),
		Products: products,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func FormatUpdate(at time.Time, notices []ChangeNotice) (string, error) {
	buf, err := messages.RenderTemplate("update", updateData{
		Time:    at.Format(time.ANSIC),
		Notices: notices,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
