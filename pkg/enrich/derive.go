package enrich

import (
	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/tabular"
)

// deriveColumns appends the computed columns and fills them from the
// attributes each row has available. A cell that already holds the
// derived value is left alone so converged reruns stay quiet.
func deriveColumns(d *tabular.Dataset) []changelog.Record {
	loyaltyColumn, hasLoyalty := d.ResolveColumn(tabular.ColumnLoyaltyPoints)
	ageColumn, hasAge := d.ResolveColumn(tabular.ColumnAge)
	if !hasLoyalty {
		// Both derivations read loyalty points; without the column
		// there is nothing to compute.
		return nil
	}

	ensureColumn(d, tabular.ColumnIsLoyalCustomer)
	if hasAge {
		ensureColumn(d, tabular.ColumnCustomerPersona)
	}

	var records []changelog.Record
	for _, row := range d.Rows() {
		var points float64
		pointsKnown := false
		if hasLoyalty {
			points, pointsKnown = row.Get(loyaltyColumn).Float()
		}

		if pointsKnown {
			loyal := isLoyal(points)
			if r, changed := setDerived(row, tabular.ColumnIsLoyalCustomer, loyal); changed {
				records = append(records, r)
			}

			if hasAge {
				if age, ok := row.Get(ageColumn).Int(); ok {
					persona := personaLabel(age, points)
					if r, changed := setDerived(row, tabular.ColumnCustomerPersona, persona); changed {
						records = append(records, r)
					}
				}
			}
		}
	}
	return records
}

// ensureColumn appends a derived column the first time it is needed.
func ensureColumn(d *tabular.Dataset, column string) {
	if !d.HasColumn(column) {
		// AddColumn only rejects duplicates, which HasColumn rules out.
		_ = d.AddColumn(column)
	}
}

// setDerived writes a derived cell and reports whether it changed.
func setDerived(row *tabular.Row, column, value string) (changelog.Record, bool) {
	old := row.Get(column)
	if !old.IsMissing() && old.String() == value {
		return changelog.Record{}, false
	}

	row.Set(column, tabular.String(value))
	return changelog.Record{
		Row:    row.ID(),
		Column: column,
		Old:    old.String(),
		New:    value,
		Action: changelog.ActionDerived,
	}, true
}

// isLoyal renders the loyalty flag as the Yes/No vocabulary the output
// file uses.
func isLoyal(points float64) string {
	if points >= constants.LoyalCustomerPoints {
		return "Yes"
	}
	return "No"
}

// personaLabel segments a customer by age band and loyalty tier.
func personaLabel(age int, points float64) string {
	band := "Senior"
	switch {
	case age < 30:
		band = "Young"
	case age < 60:
		band = "Established"
	}

	if points >= constants.LoyalCustomerPoints {
		return band + " Loyalist"
	}
	return band + " Explorer"
}
