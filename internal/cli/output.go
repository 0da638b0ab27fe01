package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"dormhub/internal/client"
)

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func table(out io.Writer, header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func price(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func printRooms(out io.Writer, rooms []client.Room) error {
	w := table(out, "ID", "NUMBER", "TYPE", "PRICE", "FLOOR", "STATUS")
	for _, r := range rooms {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.RoomNumber, r.RoomType, price(r.Price), orDash(r.Floor), r.Status)
	}
	return w.Flush()
}

func printTenants(out io.Writer, tenants []client.Tenant) error {
	w := table(out, "NAME", "ROOM", "EMAIL", "CONTACT", "SINCE")
	for _, t := range tenants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.Room, t.EmailAddress, t.ContactNumber, t.DisplayDate())
	}
	return w.Flush()
}

func printStats(out io.Writer, s client.Statistics) {
	p := s.Percentages().Rounded()
	fmt.Fprintf(out, "Occupied     %4d  %5.1f%%\n", s.Occupied, p.Occupied)
	fmt.Fprintf(out, "Vacant       %4d  %5.1f%%\n", s.Vacant, p.Vacant)
	fmt.Fprintf(out, "Maintenance  %4d  %5.1f%%\n", s.Maintenance, p.Maintenance)
	fmt.Fprintf(out, "Total        %4d\n", s.Total())
}
