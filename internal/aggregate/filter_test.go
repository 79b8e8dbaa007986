package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

func TestFilterCustomers(t *testing.T) {
	rows := []records.Customer{
		{Name: "Meera Rao", Email: "meera@rao.in", Status: records.CustomerActive},
		{Name: "Arjun Shah", Company: "Shah Textiles", Status: records.CustomerInactive},
		{Name: "Kavya Iyer", Email: "kavya@example.com", Status: records.CustomerActive},
	}

	tests := []struct {
		name   string
		filter aggregate.Filter
		want   []string
	}{
		{name: "NoFilter", filter: aggregate.Filter{}, want: []string{"Meera Rao", "Arjun Shah", "Kavya Iyer"}},
		{name: "CaseInsensitiveName", filter: aggregate.Filter{Search: "MEERA"}, want: []string{"Meera Rao"}},
		{name: "MatchesCompany", filter: aggregate.Filter{Search: "textiles"}, want: []string{"Arjun Shah"}},
		{name: "MatchesEmail", filter: aggregate.Filter{Search: "example.com"}, want: []string{"Kavya Iyer"}},
		{name: "StatusAll", filter: aggregate.Filter{Status: aggregate.AllOption}, want: []string{"Meera Rao", "Arjun Shah", "Kavya Iyer"}},
		{name: "StatusInactive", filter: aggregate.Filter{Status: "inactive"}, want: []string{"Arjun Shah"}},
		{name: "SearchAndStatus", filter: aggregate.Filter{Search: "a", Status: "active"}, want: []string{"Meera Rao", "Kavya Iyer"}},
		{name: "NoMatch", filter: aggregate.Filter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregate.FilterCustomers(rows, tt.filter)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterEvents(t *testing.T) {
	rows := []records.Event{
		{EventName: "Rao Wedding", EventType: "wedding", Location: "Pune", Status: records.EventConfirmed},
		{EventName: "Launch", EventType: "corporate", CustomerName: "Shah Textiles", Status: records.EventPlanning},
	}

	assert.Len(t, aggregate.FilterEvents(rows, aggregate.Filter{Search: "pune"}), 1)
	assert.Len(t, aggregate.FilterEvents(rows, aggregate.Filter{Category: "corporate"}), 1)
	assert.Empty(t, aggregate.FilterEvents(rows, aggregate.Filter{Category: "corporate", Status: "confirmed"}))
}

func TestFilterDistributions(t *testing.T) {
	rows := []records.ProfitDistribution{
		{Month: "January", Year: 2024},
		{Month: "February", Year: 2024},
		{Month: "January", Year: 2025},
	}

	assert.Len(t, aggregate.FilterDistributions(rows, aggregate.Filter{Search: "2024"}), 2)
	assert.Len(t, aggregate.FilterDistributions(rows, aggregate.Filter{Category: "January"}), 2)
	assert.Len(t, aggregate.FilterDistributions(rows, aggregate.Filter{Search: "jan", Category: "2025"}), 1)
}
