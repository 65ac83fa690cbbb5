//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata: parsed user-agent and client IP.  The structs are
//  inert values, safe to log or JSON-encode; the forms component copies them
//  into each submission row for back-office analytics.
//
//  Dependencies
//  • github.com/avct/uasurfer  (UA parsing)
//

package requestinfo

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/avct/uasurfer"
)

// UA holds the parsed user-agent properties the back-office displays.
type UA struct {
	Raw     string // entire User-Agent header
	Browser string // "Chrome", "Firefox", "Safari", ...
	OS      string // "MacOSX", "Windows", "Android", ...
	Device  string // "Computer", "Phone", "Tablet", ...
	IsBot   bool
}

// Info is stored in the request context by the Enrich middleware.
type Info struct {
	UA UA
	IP string
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer stored by Enrich, or nil when the
// middleware has not run.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

// parse converts a raw header into the UA struct using uasurfer.
func parse(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)
	return UA{
		Raw:     uaHeader,
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		Device:  strings.TrimPrefix(u.DeviceType.String(), "Device"),
		IsBot:   u.IsBot(),
	}
}

// clientIP returns the remote address without the port.  The site runs behind
// its own proxy, which rewrites RemoteAddr, so no forwarded-header parsing is
// attempted here.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
