package main

import (
	"fmt"
	"io"

	"github.com/haukened/rr-dig/internal/dns/config"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

func writePreamble(w io.Writer, cfg *config.AppConfig) {
	fmt.Fprintf(w, "DnsClient sending request for %s\n", cfg.Name)
	fmt.Fprintf(w, "Server: %s\n", cfg.Server)
	fmt.Fprintf(w, "Request Type: %s\n", cfg.Type)
}

// writeResult prints the timing line, then NOTFOUND or the answer and
// additional sections. Empty sections are omitted.
func writeResult(w io.Writer, res domain.ExchangeResult) {
	fmt.Fprintf(w, "Response received after %f seconds ([%d] retries)\n", res.Elapsed.Seconds(), res.Retries())

	if res.NotFound() {
		fmt.Fprintln(w, "NOTFOUND")
		return
	}

	auth := res.Authoritative()
	if len(res.Answers) > 0 {
		fmt.Fprintf(w, "***Answer Section ([%d] records)***\n", len(res.Answers))
		for _, rr := range res.Answers {
			fmt.Fprintln(w, formatRecord(rr, auth))
		}
	}
	if len(res.Additional) > 0 {
		fmt.Fprintf(w, "***Additional Section ([%d] records)***\n", len(res.Additional))
		for _, rr := range res.Additional {
			fmt.Fprintln(w, formatRecord(rr, auth))
		}
	}
}

// formatRecord renders one tab-separated record line.
func formatRecord(rr domain.ResourceRecord, auth bool) string {
	tag := "nonauth"
	if auth {
		tag = "auth"
	}

	switch d := rr.Data.(type) {
	case domain.Address:
		return fmt.Sprintf("IP\t%s\t%d\t%s", d, rr.TTL, tag)
	case domain.NameServer:
		return fmt.Sprintf("NS\t%s\t%d\t%s", d.Host, rr.TTL, tag)
	case domain.Alias:
		return fmt.Sprintf("CNAME\t%s\t%d\t%s", d.Target, rr.TTL, tag)
	case domain.MailExchange:
		return fmt.Sprintf("MX\t%s\t%d\t%d\t%s", d.Exchange, d.Preference, rr.TTL, tag)
	default:
		return fmt.Sprintf("%s\t%v\t%d\t%s", rr.Type, rr.Data, rr.TTL, tag)
	}
}

func writeError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR\t%v\n", err)
}
