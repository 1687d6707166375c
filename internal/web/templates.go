package web

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"evalgo.org/vlanreg/internal/registry"
	"evalgo.org/vlanreg/models"
)

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Health registry.Health
	VLANs  []models.VLAN
	MinID  int
	MaxID  int
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2933;background:#f5f7fa}
h1{margin-bottom:.25rem}
.cards{display:flex;gap:1rem;margin:1.5rem 0}
.card{background:#fff;border-radius:6px;padding:1rem 1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.1)}
.card .value{font-size:1.6rem;font-weight:600}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e4e7eb}
.status{color:#0b7a3e;font-weight:600}
.empty{color:#7b8794;font-style:italic}`

// reloadScript refreshes the page when a vlan_created event arrives.
const reloadScript = `(function(){
var p=location.protocol==="https:"?"wss://":"ws://";
try{var ws=new WebSocket(p+location.host+"/ws/events");
ws.onmessage=function(){location.reload();};}catch(e){}
})();`

// Dashboard renders the full dashboard page.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>VLAN Registry</title><style>`+pageStyle+`</style></head><body>`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>VLAN Registry</h1><p>Accepted IDs: %d&ndash;%d</p>`, data.MinID, data.MaxID); err != nil {
			return err
		}
		if err := HealthCards(data.Health).Render(ctx, w); err != nil {
			return err
		}
		if err := VLANTable(data.VLANs, data.Health.Timestamp).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script>`+reloadScript+`</script></body></html>`)
		return err
	})
}

// HealthCards renders the status summary cards.
func HealthCards(h registry.Health) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cards := []struct{ label, value string }{
			{"Status", h.Status},
			{"Registered VLANs", strconv.Itoa(h.TotalVLANs)},
			{"Heap in use", humanize.IBytes(h.Memory.HeapAllocBytes)},
			{"Goroutines", strconv.Itoa(h.Memory.Goroutines)},
			{"Uptime", h.Uptime},
		}

		if _, err := io.WriteString(w, `<div class="cards">`); err != nil {
			return err
		}
		for _, card := range cards {
			if _, err := fmt.Fprintf(w, `<div class="card"><div class="label">%s</div><div class="value">%s</div></div>`,
				templ.EscapeString(card.label), templ.EscapeString(card.value)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// VLANTable renders the registered VLANs. Creation times are shown relative to now.
func VLANTable(vlans []models.VLAN, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(vlans) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No VLANs registered yet.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table><thead><tr><th>ID</th><th>Name</th><th>Status</th><th>Created</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, v := range vlans {
			if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td class="status">%s</td><td title="%s">%s</td></tr>`,
				v.ID,
				templ.EscapeString(v.Name),
				templ.EscapeString(v.Status),
				templ.EscapeString(v.CreatedAt.Format(time.RFC3339)),
				templ.EscapeString(humanize.RelTime(v.CreatedAt, now, "ago", "from now")),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
