// Package seed reads room inventory and pricing settings from a YAML file.
package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

type roomDoc struct {
	ID        string `yaml:"id"`
	Number    string `yaml:"number"`
	Type      string `yaml:"type"`
	Floor     int    `yaml:"floor"`
	BasePrice string `yaml:"base_price"`
}

type rateTableDoc struct {
	RoomType    string `yaml:"room_type"`
	WeekdayRate string `yaml:"weekday_rate"`
	WeekendRate string `yaml:"weekend_rate"`
}

type seasonDoc struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Start     string   `yaml:"start"`
	End       string   `yaml:"end"`
	Modifier  string   `yaml:"modifier_percent"`
	Active    *bool    `yaml:"active"`
	RoomTypes []string `yaml:"room_types"`
}

type weekdayDoc struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Weekday   string   `yaml:"weekday"`
	Modifier  string   `yaml:"modifier_percent"`
	Enabled   *bool    `yaml:"enabled"`
	RoomTypes []string `yaml:"room_types"`
}

type specialDateDoc struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Date      string   `yaml:"date"`
	Modifier  string   `yaml:"modifier_percent"`
	Active    *bool    `yaml:"active"`
	RoomTypes []string `yaml:"room_types"`
}

type taxRateDoc struct {
	Category      string `yaml:"category"`
	ServiceCharge string `yaml:"service_charge_percent"`
	VAT           string `yaml:"vat_percent"`
}

type document struct {
	LastAuditDate    string           `yaml:"last_audit_date"`
	Rooms            []roomDoc        `yaml:"rooms"`
	RateTables       []rateTableDoc   `yaml:"rate_tables"`
	Seasons          []seasonDoc      `yaml:"seasons"`
	WeekdayModifiers []weekdayDoc     `yaml:"weekday_modifiers"`
	SpecialDates     []specialDateDoc `yaml:"special_dates"`
	TaxRates         []taxRateDoc     `yaml:"tax_rates"`
}

// Data is a parsed seed file.
type Data struct {
	LastAuditDate    time.Time
	Rooms            []domain.Room
	RateTables       []domain.RateTable
	Seasons          []domain.Season
	WeekdayModifiers []domain.WeekdayModifier
	SpecialDates     []domain.SpecialDate
	TaxRates         []domain.TaxRate
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes seed YAML. Money and percentages are strings so no precision is lost.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	p := &parser{}
	data := &Data{}
	if doc.LastAuditDate != "" {
		data.LastAuditDate = p.date("last_audit_date", doc.LastAuditDate)
	}
	for i, r := range doc.Rooms {
		field := fmt.Sprintf("rooms[%d]", i)
		id := r.ID
		if id == "" {
			id = r.Number
		}
		data.Rooms = append(data.Rooms, domain.Room{
			RoomID:       id,
			Number:       r.Number,
			RoomTypeCode: r.Type,
			Floor:        r.Floor,
			BasePrice:    p.amount(field+".base_price", r.BasePrice),
			Status:       domain.RoomVacant,
		})
	}
	for i, t := range doc.RateTables {
		field := fmt.Sprintf("rate_tables[%d]", i)
		data.RateTables = append(data.RateTables, domain.RateTable{
			RoomTypeCode: t.RoomType,
			WeekdayRate:  p.amount(field+".weekday_rate", t.WeekdayRate),
			WeekendRate:  p.amount(field+".weekend_rate", t.WeekendRate),
		})
	}
	for i, s := range doc.Seasons {
		field := fmt.Sprintf("seasons[%d]", i)
		data.Seasons = append(data.Seasons, domain.Season{
			SeasonID:        s.ID,
			Name:            s.Name,
			StartDate:       p.date(field+".start", s.Start),
			EndDate:         p.date(field+".end", s.End),
			ModifierPercent: p.amount(field+".modifier_percent", s.Modifier),
			Active:          enabled(s.Active),
			RoomTypes:       s.RoomTypes,
		})
	}
	for i, w := range doc.WeekdayModifiers {
		field := fmt.Sprintf("weekday_modifiers[%d]", i)
		data.WeekdayModifiers = append(data.WeekdayModifiers, domain.WeekdayModifier{
			ModifierID:      w.ID,
			Name:            w.Name,
			Weekday:         p.weekday(field+".weekday", w.Weekday),
			ModifierPercent: p.amount(field+".modifier_percent", w.Modifier),
			Enabled:         enabled(w.Enabled),
			RoomTypes:       w.RoomTypes,
		})
	}
	for i, s := range doc.SpecialDates {
		field := fmt.Sprintf("special_dates[%d]", i)
		data.SpecialDates = append(data.SpecialDates, domain.SpecialDate{
			SpecialDateID:   s.ID,
			Name:            s.Name,
			Date:            p.date(field+".date", s.Date),
			ModifierPercent: p.amount(field+".modifier_percent", s.Modifier),
			Active:          enabled(s.Active),
			RoomTypes:       s.RoomTypes,
		})
	}
	for i, t := range doc.TaxRates {
		field := fmt.Sprintf("tax_rates[%d]", i)
		data.TaxRates = append(data.TaxRates, domain.TaxRate{
			Category:             domain.ChargeCategory(strings.ToUpper(t.Category)),
			ServiceChargePercent: p.amount(field+".service_charge_percent", t.ServiceCharge),
			VATPercent:           p.amount(field+".vat_percent", t.VAT),
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	return data, nil
}

// enabled treats an omitted flag as on.
func enabled(b *bool) bool {
	return b == nil || *b
}

// parser keeps the first error so field conversions read linearly.
type parser struct {
	err error
}

func (p *parser) fail(field, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("seed: %s: invalid value %q: %w", field, value, err)
	}
}

func (p *parser) amount(field, value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		p.fail(field, value, err)
	}
	return d
}

func (p *parser) date(field, value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		p.fail(field, value, err)
		return time.Time{}
	}
	return t
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

func (p *parser) weekday(field, value string) time.Weekday {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		p.fail(field, value, fmt.Errorf("unknown weekday"))
	}
	return wd
}
