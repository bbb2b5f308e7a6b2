package usecase

import (
	"testing"
	"time"

	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/ragingtiger/amznbot/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func TestFormatProduct(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		line, err := FormatProduct(models.Product{
			ID:             "B000000001",
			Title:          "Pots & Pans",
			FormattedPrice: "$9.99",
			Availability:   "In Stock.",
			SalesRank:      util.Ptr(42),
			DetailURL:      "https://www.amazon.com/dp/B000000001",
		})
		require.NoError(t, err)
		assert.Equal(t, "*B000000001*: `$9.99` Pots &amp; Pans | SalesRank: 42 | Availability: In Stock. |<https://www.amazon.com/dp/B000000001|link>", line)
	})

	t.Run("missing fields", func(t *testing.T) {
		line, err := FormatProduct(models.Product{ID: "B2", Title: "Mug", DetailURL: "u"})
		require.NoError(t, err)
		assert.Equal(t, "*B2*: `N/A` Mug | SalesRank: N/A | Availability: N/A |<u|link>", line)
	})
}

func TestFormatStartup(t *testing.T) {
	text, err := FormatStartup(fixedTime, []models.Product{
		{ID: "A", Title: "a", FormattedPrice: "$1.00", DetailURL: "ua"},
		{ID: "B", Title: "b", FormattedPrice: "$2.00", DetailURL: "ub"},
	})
	require.NoError(t, err)
	assert.Equal(t, "*AMZNBOT RESTARTING ... INITIAL PRICES @ Tue Mar  5 14:07:09 2024:*\n"+
		"*A*: `$1.00` a | SalesRank: N/A | Availability: N/A |<ua|link>\n"+
		"*B*: `$2.00` b | SalesRank: N/A | Availability: N/A |<ub|link>", text)

	empty, err := FormatStartup(fixedTime, nil)
	require.NoError(t, err)
	assert.Equal(t, "*AMZNBOT RESTARTING ... INITIAL PRICES @ Tue Mar  5 14:07:09 2024:*", empty)
}

func TestFormatUpdate(t *testing.T) {
	text, err := FormatUpdate(fixedTime, []ChangeNotice{
		{Product: models.Product{ID: "A", Title: "a", FormattedPrice: "$9.00", DetailURL: "ua"}, Previous: "$10.00"},
		{Product: models.Product{ID: "B", Title: "b", FormattedPrice: "", DetailURL: "ub"}, Previous: "$3.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "*| Update: Tue Mar  5 14:07:09 2024 |*\n"+
		"*A*: `$9.00` a | SalesRank: N/A | Availability: N/A |<ua|link> (was `$10.00`) ▼ 1.00\n"+
		"*B*: `N/A` b | SalesRank: N/A | Availability: N/A |<ub|link> (was `$3.00`)", text)
}
