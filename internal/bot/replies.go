package bot

import (
	"fmt"
	"strings"

	birthdaydomain "github.com/smallbiznis/togetherbot/internal/birthday/domain"
	"github.com/smallbiznis/togetherbot/internal/compatibility"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	"github.com/smallbiznis/togetherbot/internal/plural"
	reldomain "github.com/smallbiznis/togetherbot/internal/relationship/domain"
)

const dateLayout = "02.01.2006"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var monthGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var weekdayNames = [...]string{
	"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота",
}

// replies renders the texts that carry counts under the configured plural rule.
type replies struct {
	rule plural.Rule
}

func (t replies) count(n int, noun plural.Noun) string {
	return fmt.Sprintf("%d %s", n, noun.Pick(t.rule, n))
}

func (t replies) count64(n int64, noun plural.Noun) string {
	return fmt.Sprintf("%d %s", n, noun.Pick(t.rule, int(n)))
}

func helpText(premium bool) string {
	var b strings.Builder
	b.WriteString("💕 Бот для подсчета дней отношений и праздников\n\n")
	b.WriteString("📅 Отношения:\n")
	b.WriteString("/setdate DD.MM.YYYY [имя] - установить дату\n")
	b.WriteString("/count - посчитать дни\n")
	b.WriteString("/stats - статистика\n\n")
	b.WriteString("🎂 Дни рождения:\n")
	b.WriteString("/addbirthday Имя DD.MM - добавить\n")
	b.WriteString("/birthdays - список\n")
	b.WriteString("/delbirthday Имя - удалить\n\n")
	b.WriteString("🎉 Праздники:\n")
	b.WriteString("/holidays - ближайшие праздники\n")
	b.WriteString("/allholidays - все праздники мира\n")
	b.WriteString("/find праздник - найти праздник\n")
	b.WriteString("/nextholiday - ближайший праздник\n")
	b.WriteString("/botday - день создания бота\n\n")
	if premium {
		b.WriteString("💎 Премиум:\n")
		b.WriteString("/premium_shop - магазин функций\n")
		b.WriteString("/advanced_stats - расширенная статистика\n")
		b.WriteString("/add_holiday Название DD.MM - свой праздник\n")
		b.WriteString("/myholidays - мои праздники\n")
		b.WriteString("/delholiday Название - удалить свой праздник\n")
		b.WriteString("/compatibility Имя1 Имя2 - тест совместимости\n\n")
	}
	b.WriteString("❓ Помощь:\n")
	b.WriteString("/help - справка")
	return b.String()
}

func startText(premium bool) string {
	return "💖 Привет! Я бот для подсчета дней отношений и отсчета до праздников!\n\n" + helpText(premium)
}

func setDateText(rel *reldomain.Relationship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Дата начала отношений установлена: %s", rel.StartDate.Format(dateLayout))
	if partner := rel.Partner(); partner != "" {
		fmt.Fprintf(&b, "\n💕 С: %s", partner)
	}
	b.WriteString("\n📅 Используй /count чтобы посчитать дни")
	return b.String()
}

func (t replies) countText(r *reldomain.Report) string {
	days := r.Stats.Days
	var b strings.Builder
	if partner := r.Relationship.Partner(); partner != "" {
		fmt.Fprintf(&b, "💖 Вы с %s вместе уже %s!", partner, t.count(days, plural.Days))
	} else {
		fmt.Fprintf(&b, "💖 Вы вместе уже %s!", t.count(days, plural.Days))
	}
	fmt.Fprintf(&b, "\n📅 С: %s", r.Relationship.StartDate.Format(dateLayout))

	switch {
	case r.Stats.Years > 0:
		fmt.Fprintf(&b, "\n📊 Это %s и %s", t.count(r.Stats.Years, plural.Years), t.count(r.Stats.DaysAfterYears(), plural.Days))
	case r.Stats.Months > 0:
		fmt.Fprintf(&b, "\n📊 Это %s и %s", t.count(r.Stats.Months, plural.Months), t.count(r.Stats.DaysAfterMonths(), plural.Days))
	}
	if r.Milestone != "" {
		fmt.Fprintf(&b, "\n\n%s", r.Milestone)
	}
	return b.String()
}

func (t replies) statsText(r *reldomain.Report) string {
	var b strings.Builder
	b.WriteString("📊 Статистика:\n\n")
	if partner := r.Relationship.Partner(); partner != "" {
		fmt.Fprintf(&b, "💕 Пара: Вы и %s\n", partner)
	}
	fmt.Fprintf(&b, "📅 Начало: %s\n", r.Relationship.StartDate.Format(dateLayout))
	b.WriteString("⏰ Вместе уже:\n")
	fmt.Fprintf(&b, "   • %s\n", t.count(r.Stats.Days, plural.Days))
	fmt.Fprintf(&b, "   • %s\n", t.count(r.Stats.Weeks, plural.Weeks))
	fmt.Fprintf(&b, "   • %s", t.count(r.Stats.Months, plural.Months))
	if r.Stats.Years > 0 {
		fmt.Fprintf(&b, "\n   • %s", t.count(r.Stats.Years, plural.Years))
	}
	return b.String()
}

func (t replies) advancedText(r *reldomain.AdvancedReport) string {
	var b strings.Builder
	b.WriteString("📈 Расширенная статистика:\n\n")
	fmt.Fprintf(&b, "📅 Начало: %s (%s)\n", r.Relationship.StartDate.Format(dateLayout), weekdayNames[r.StartWeekday])
	fmt.Fprintf(&b, "⏰ Вместе: %s\n", t.count(r.Stats.Days, plural.Days))
	fmt.Fprintf(&b, "   • %s\n", t.count64(r.Hours, plural.Hours))
	fmt.Fprintf(&b, "   • %s\n", t.count64(r.Minutes, plural.Minutes))
	if r.DaysToAnniversary == 0 {
		fmt.Fprintf(&b, "💍 Сегодня годовщина: %s! 🎉\n", t.count(r.AnniversaryYears, plural.Years))
	} else {
		fmt.Fprintf(&b, "💍 До годовщины (%s): %s, %s\n",
			t.count(r.AnniversaryYears, plural.Years),
			t.count(r.DaysToAnniversary, plural.Days),
			r.NextAnniversary.Format(dateLayout),
		)
	}
	fmt.Fprintf(&b, "🎯 До отметки %s: %s", t.count(r.NextMilestone, plural.Days), t.count(r.DaysToNextMilestone, plural.Days))
	if r.Milestone != "" {
		fmt.Fprintf(&b, "\n\n%s", r.Milestone)
	}
	return b.String()
}

func birthdayAddedText(b *birthdaydomain.Birthday) string {
	return fmt.Sprintf("✅ День рождения добавлен!\n🎂 %s: %s", b.Name, b.MonthDay())
}

func (t replies) birthdaysText(items []birthdaydomain.Upcoming) string {
	if len(items) == 0 {
		return "📋 Нет добавленных дней рождения.\nДобавь: /addbirthday Имя DD.MM"
	}
	var b strings.Builder
	b.WriteString("🎂 Твои дни рождения:\n")
	for _, item := range items {
		b.WriteString("\n")
		switch item.DaysUntil {
		case 0:
			fmt.Fprintf(&b, "🎉 Сегодня день рождения у %s!", item.Name)
		case 1:
			fmt.Fprintf(&b, "📅 %s: завтра! (%s)", item.Name, item.Date)
		default:
			fmt.Fprintf(&b, "📅 %s: через %s (%s)", item.Name, t.count(item.DaysUntil, plural.Days), item.Date)
		}
	}
	return b.String()
}

func (t replies) upcomingText(entries []holidaydomain.Entry) string {
	var b strings.Builder
	b.WriteString("🎉 Ближайшие праздники:\n")
	for _, e := range entries {
		b.WriteString("\n")
		switch e.DaysUntil {
		case 0:
			fmt.Fprintf(&b, "🎊 %s: СЕГОДНЯ! 🎊", e.Name)
		case 1:
			fmt.Fprintf(&b, "🎊 %s: завтра! (%s)", e.Name, e.Date)
		default:
			fmt.Fprintf(&b, "📅 %s: через %s (%s)", e.Name, t.count(e.DaysUntil, plural.Days), e.Date)
		}
	}
	b.WriteString("\n\n✨ Используй /allholidays чтобы увидеть все праздники")
	return b.String()
}

func (t replies) allHolidaysText(groups []holidaydomain.MonthGroup) string {
	var b strings.Builder
	b.WriteString("🎊 Все праздники в боте:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "\n📅 %s:\n", monthNames[g.Month-1])
		for _, e := range g.Entries {
			if e.DaysUntil == 0 {
				fmt.Fprintf(&b, "  🎉 %s - СЕГОДНЯ!\n", e.Name)
				continue
			}
			fmt.Fprintf(&b, "  📌 %s (%s) - через %s\n", e.Name, e.Date, t.count(e.DaysUntil, plural.Days))
		}
	}
	b.WriteString("\n✨ Используй /find чтобы найти конкретный праздник")
	return b.String()
}

func (t replies) searchText(query string, entries []holidaydomain.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Найдено праздников с '%s':\n", query)
	for _, e := range entries {
		b.WriteString("\n")
		switch e.DaysUntil {
		case 0:
			fmt.Fprintf(&b, "🎉 %s - СЕГОДНЯ! (%s)", e.Name, e.Date)
		case 1:
			fmt.Fprintf(&b, "📌 %s - ЗАВТРА! (%s)", e.Name, e.Date)
		default:
			fmt.Fprintf(&b, "📌 %s - через %s (%s)", e.Name, t.count(e.DaysUntil, plural.Days), e.Date)
		}
	}
	return b.String()
}

func (t replies) nearestText(e *holidaydomain.Entry) string {
	switch e.DaysUntil {
	case 0:
		return fmt.Sprintf("🎊 СЕГОДНЯ %s! 🎉🎉🎉", e.Name)
	case 1:
		return fmt.Sprintf("🎉 Ближайший праздник: %s - ЗАВТРА! 🎊", e.Name)
	default:
		return fmt.Sprintf("🎉 Ближайший праздник: %s\n📅 Через %s\n🗓️ %s",
			e.Name, t.count(e.DaysUntil, plural.Days), e.Next.Format(dateLayout))
	}
}

func (t replies) botDayText(e holidaydomain.Entry) string {
	switch e.DaysUntil {
	case 0:
		return "🎉🎉🎉 СЕГОДНЯ День создания этого бота! 🎉🎉🎉\n\nСпасибо, что используешь меня! 💖"
	case 1:
		return "🎊 Завтра День создания бота! Уже готовим праздник! 🎊"
	default:
		return fmt.Sprintf("🤖 День создания бота: %d %s\n📅 Осталось ждать: %s",
			e.Date.Day, monthGenitive[e.Date.Month-1], t.count(e.DaysUntil, plural.Days))
	}
}

func shopText(currency string, items []entdomain.ShopItem) string {
	var b strings.Builder
	b.WriteString("💎 Премиум функции:\n")
	for _, item := range items {
		b.WriteString("\n")
		if item.Owned {
			fmt.Fprintf(&b, "✅ %s (куплено)\n", item.Name)
			continue
		}
		fmt.Fprintf(&b, "🔸 %s - %d %s\n", item.Name, item.Cost, currency)
		if item.Description != "" {
			fmt.Fprintf(&b, "   %s\n", item.Description)
		}
		fmt.Fprintf(&b, "   Купить: /buy_%s\n", item.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func grantText(r *entdomain.GrantResult) string {
	if r.AlreadyOwned {
		return fmt.Sprintf("ℹ️ Функция «%s» уже куплена.", r.Feature.Name)
	}
	return fmt.Sprintf("✅ Функция «%s» активирована! Спасибо за покупку 💖", r.Feature.Name)
}

func deniedText(d *entdomain.DeniedError) string {
	return fmt.Sprintf("🔒 «%s» - премиум функция.\n💰 Стоимость: %d %s\nКупить: /buy_%s\nВсе функции: /premium_shop",
		d.Feature.Name, d.Feature.Cost, d.Currency, d.Feature.ID)
}

func (t replies) personalAddedText(e *holidaydomain.Entry) string {
	return fmt.Sprintf("✅ Праздник добавлен!\n🎉 %s: %s, через %s", e.Name, e.Date, t.count(e.DaysUntil, plural.Days))
}

func (t replies) personalListText(entries []holidaydomain.Entry) string {
	if len(entries) == 0 {
		return "📋 У тебя нет своих праздников.\nДобавь: /add_holiday Название DD.MM"
	}
	var b strings.Builder
	b.WriteString("🎉 Твои праздники:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n📌 %s (%s) - через %s", e.Name, e.Date, t.count(e.DaysUntil, plural.Days))
	}
	return b.String()
}

var verdictText = map[compatibility.Verdict]string{
	compatibility.VerdictSoulmates: "💞 Созданы друг для друга!",
	compatibility.VerdictGreat:     "💖 Отличная пара!",
	compatibility.VerdictGood:      "💛 Хорошая совместимость.",
	compatibility.VerdictWorkOnIt:  "🌱 Есть над чем поработать.",
}

func compatibilityText(r *compatibility.Result) string {
	return fmt.Sprintf("💘 %s + %s\nСовместимость: %d%%\n%s", r.First, r.Second, r.Score, verdictText[r.Verdict])
}

func deletedText(kind, name string, removed bool) string {
	if removed {
		return fmt.Sprintf("✅ %s %s удален!", kind, name)
	}
	return fmt.Sprintf("❌ %s %s не найден", kind, name)
}
