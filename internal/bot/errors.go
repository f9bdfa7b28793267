package bot

import (
	"errors"
	"fmt"

	birthdaydomain "github.com/smallbiznis/togetherbot/internal/birthday/domain"
	"github.com/smallbiznis/togetherbot/internal/compatibility"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	reldomain "github.com/smallbiznis/togetherbot/internal/relationship/domain"
)

var usage = map[string]string{
	"setdate":       "❌ Пожалуйста, укажи дату: /setdate DD.MM.YYYY [имя]",
	"addbirthday":   "❌ Используй: /addbirthday Имя DD.MM\nНапример: /addbirthday Маша 15.03",
	"delbirthday":   "❌ Укажи имя: /delbirthday Имя",
	"find":          "🔍 Используй: /find праздник\nНапример: /find новый год\nИли: /find день",
	"add_holiday":   "❌ Используй: /add_holiday Название DD.MM\nНапример: /add_holiday Годовщина 14.02",
	"delholiday":    "❌ Укажи название: /delholiday Название",
	"compatibility": "❌ Используй: /compatibility Имя1 Имя2",
}

const (
	replyNotSet        = "❌ Сначала установи дату: /setdate DD.MM.YYYY"
	replyFutureDate    = "❌ Дата не может быть в будущем!"
	replyBadFullDate   = "❌ Неверный формат даты! Используй: DD.MM.YYYY"
	replyBadMonthDay   = "❌ Неверный формат даты! Используй: DD.MM"
	replyUnknownFeat   = "❌ Такой функции нет. Смотри /premium_shop"
	replyUnknownCmd    = "🤔 Не знаю такую команду. Список команд: /help"
	replyInvalidAccess = "❌ Не удалось определить пользователя"
)

// classify maps a handler error to a user reply and a metrics outcome. ok is
// false for unexpected failures, whose reply is dropped.
func classify(req Request, err error) (reply string, outcome string, ok bool) {
	var denied *entdomain.DeniedError
	switch {
	case errors.As(err, &denied):
		return deniedText(denied), obsmetrics.OutcomeDenied, true

	case errors.Is(err, reldomain.ErrNotSet):
		return replyNotSet, obsmetrics.OutcomeRejected, true
	case errors.Is(err, reldomain.ErrMissingDate):
		return usage["setdate"], obsmetrics.OutcomeRejected, true
	case errors.Is(err, reldomain.ErrFutureDate):
		return replyFutureDate, obsmetrics.OutcomeRejected, true
	case errors.Is(err, reldomain.ErrInvalidDate):
		return replyBadFullDate, obsmetrics.OutcomeRejected, true

	case errors.Is(err, birthdaydomain.ErrInvalidDate), errors.Is(err, holidaydomain.ErrInvalidDate):
		return replyBadMonthDay, obsmetrics.OutcomeRejected, true
	case errors.Is(err, birthdaydomain.ErrInvalidName),
		errors.Is(err, holidaydomain.ErrInvalidName),
		errors.Is(err, holidaydomain.ErrEmptyQuery),
		errors.Is(err, compatibility.ErrMissingNames):
		return usageFor(req.Command.Name), obsmetrics.OutcomeRejected, true

	case errors.Is(err, holidaydomain.ErrNoMatches):
		return fmt.Sprintf("❌ Праздники с '%s' не найдены", req.Command.ArgText()), obsmetrics.OutcomeNotFound, true
	case errors.Is(err, entdomain.ErrUnknownFeature):
		return replyUnknownFeat, obsmetrics.OutcomeNotFound, true

	case errors.Is(err, reldomain.ErrInvalidUser),
		errors.Is(err, birthdaydomain.ErrInvalidUser),
		errors.Is(err, holidaydomain.ErrInvalidUser),
		errors.Is(err, entdomain.ErrInvalidUser),
		errors.Is(err, compatibility.ErrInvalidUser):
		return replyInvalidAccess, obsmetrics.OutcomeRejected, true
	}
	return "", obsmetrics.OutcomeFailed, false
}

func usageFor(command string) string {
	if text, ok := usage[command]; ok {
		return text
	}
	return replyUnknownCmd
}
