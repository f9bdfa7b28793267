package bot

import (
	"context"
	"strings"

	birthdaydomain "github.com/smallbiznis/togetherbot/internal/birthday/domain"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	reldomain "github.com/smallbiznis/togetherbot/internal/relationship/domain"
)

func (d *Dispatcher) start(ctx context.Context, req Request) (string, error) {
	return startText(d.premium), nil
}

func (d *Dispatcher) help(ctx context.Context, req Request) (string, error) {
	return helpText(d.premium), nil
}

func (d *Dispatcher) setDate(ctx context.Context, req Request) (string, error) {
	args := req.Command.Args
	if len(args) == 0 {
		return "", reldomain.ErrMissingDate
	}
	rel, err := d.relationships.SetStart(ctx, reldomain.SetStartRequest{
		UserID:      req.UserID,
		StartDate:   args[0],
		PartnerName: strings.Join(args[1:], " "),
	})
	if err != nil {
		return "", err
	}
	return setDateText(rel), nil
}

func (d *Dispatcher) countDays(ctx context.Context, req Request) (string, error) {
	report, err := d.relationships.Report(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.countText(report), nil
}

func (d *Dispatcher) stats(ctx context.Context, req Request) (string, error) {
	report, err := d.relationships.Report(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.statsText(report), nil
}

func (d *Dispatcher) addBirthday(ctx context.Context, req Request) (string, error) {
	if len(req.Command.Args) < 2 {
		return "", birthdaydomain.ErrInvalidName
	}
	name, date := splitTrailing(req.Command.Args)
	b, err := d.birthdays.Add(ctx, birthdaydomain.AddRequest{UserID: req.UserID, Name: name, Date: date})
	if err != nil {
		return "", err
	}
	return birthdayAddedText(b), nil
}

func (d *Dispatcher) listBirthdays(ctx context.Context, req Request) (string, error) {
	items, err := d.birthdays.List(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.birthdaysText(items), nil
}

func (d *Dispatcher) deleteBirthday(ctx context.Context, req Request) (string, error) {
	name := req.Command.ArgText()
	removed, err := d.birthdays.Delete(ctx, req.UserID, name)
	if err != nil {
		return "", err
	}
	return deletedText("День рождения", name, removed), nil
}

func (d *Dispatcher) upcomingHolidays(ctx context.Context, req Request) (string, error) {
	entries, err := d.holidays.Upcoming(ctx, req.UserID, holidaydomain.UpcomingLimit)
	if err != nil {
		return "", err
	}
	return d.text.upcomingText(entries), nil
}

func (d *Dispatcher) allHolidays(ctx context.Context, req Request) (string, error) {
	groups, err := d.holidays.AllByMonth(ctx)
	if err != nil {
		return "", err
	}
	return d.text.allHolidaysText(groups), nil
}

func (d *Dispatcher) findHoliday(ctx context.Context, req Request) (string, error) {
	query := req.Command.ArgText()
	entries, err := d.holidays.Search(ctx, req.UserID, query)
	if err != nil {
		return "", err
	}
	return d.text.searchText(query, entries), nil
}

func (d *Dispatcher) nextHoliday(ctx context.Context, req Request) (string, error) {
	entry, err := d.holidays.Nearest(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.nearestText(entry), nil
}

func (d *Dispatcher) botDay(ctx context.Context, req Request) (string, error) {
	return d.text.botDayText(d.holidays.BotBirthday(ctx)), nil
}

func (d *Dispatcher) premiumShop(ctx context.Context, req Request) (string, error) {
	items, err := d.entitlements.Shop(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return shopText(d.entitlements.Catalog().Currency(), items), nil
}

// buy handles /buy_<feature>. The suffix is validated into a FeatureID
// before the ledger is touched.
func (d *Dispatcher) buy(ctx context.Context, req Request) (string, error) {
	feature, err := entdomain.ParseFeatureID(strings.TrimPrefix(req.Command.Name, "buy_"))
	if err != nil {
		return "", err
	}
	result, err := d.entitlements.Grant(ctx, req.UserID, feature)
	if err != nil {
		return "", err
	}
	return grantText(result), nil
}

func (d *Dispatcher) advancedStats(ctx context.Context, req Request) (string, error) {
	report, err := d.relationships.Advanced(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.advancedText(report), nil
}

func (d *Dispatcher) addHoliday(ctx context.Context, req Request) (string, error) {
	name, date := splitTrailing(req.Command.Args)
	entry, err := d.holidays.AddPersonal(ctx, holidaydomain.AddPersonalRequest{
		UserID: req.UserID,
		Name:   name,
		Date:   date,
	})
	if err != nil {
		return "", err
	}
	return d.text.personalAddedText(entry), nil
}

func (d *Dispatcher) myHolidays(ctx context.Context, req Request) (string, error) {
	entries, err := d.holidays.ListPersonal(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return d.text.personalListText(entries), nil
}

func (d *Dispatcher) deleteHoliday(ctx context.Context, req Request) (string, error) {
	name := req.Command.ArgText()
	removed, err := d.holidays.DeletePersonal(ctx, req.UserID, name)
	if err != nil {
		return "", err
	}
	return deletedText("Праздник", name, removed), nil
}

func (d *Dispatcher) checkCompatibility(ctx context.Context, req Request) (string, error) {
	var first, second string
	if args := req.Command.Args; len(args) > 0 {
		first = args[0]
		second = strings.Join(args[1:], " ")
	}
	result, err := d.compatibility.Check(ctx, req.UserID, first, second)
	if err != nil {
		return "", err
	}
	return compatibilityText(result), nil
}
