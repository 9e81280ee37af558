package i18n

// Key identifies a catalog message.
type Key string

const (
	WeatherLoadFailed   Key = "weatherLoadFailed"
	LocationFailed      Key = "locationFailed"
	GeoPermissionDenied Key = "geoPermissionDenied"
	GeoUnavailable      Key = "geoUnavailable"
	GeoTimeout          Key = "geoTimeout"
	GeoUnsupported      Key = "geoUnsupported"
	GeoUnknown          Key = "geoUnknown"

	History            Key = "history"
	Forecast           Key = "forecast"
	DataUnavailable    Key = "dataUnavailable"
	HistoricalDataNote Key = "historicalDataNote"
	ForecastDataNote   Key = "forecastDataNote"
	ClickDayForDetails Key = "clickDayForDetails"
	WeatherCalendar    Key = "weatherCalendar"

	GoodMorning   Key = "goodMorning"
	GoodAfternoon Key = "goodAfternoon"
	GoodEvening   Key = "goodEvening"
	GoodNight     Key = "goodNight"

	Today              Key = "today"
	LoadingWeatherData Key = "loadingWeatherData"
	TryAgain           Key = "tryAgain"

	HighHumidity   Key = "highHumidity"
	NormalHumidity Key = "normalHumidity"
	LowHumidity    Key = "lowHumidity"
	HighUV         Key = "highUV"
	ModerateUV     Key = "moderateUV"
	LowUV          Key = "lowUV"

	KmPerHour  Key = "kmh"
	Kilometres Key = "km"
	Millimetre Key = "mm"
)

var messages = map[Language]map[Key]string{
	RU: {
		WeatherLoadFailed:   "Не удалось загрузить данные о погоде",
		LocationFailed:      "Не удалось получить местоположение",
		GeoPermissionDenied: "Доступ к геолокации запрещен пользователем",
		GeoUnavailable:      "Информация о местоположении недоступна",
		GeoTimeout:          "Превышено время ожидания запроса местоположения",
		GeoUnsupported:      "Геолокация не поддерживается",
		GeoUnknown:          "Неизвестная ошибка получения местоположения",

		History:            "История",
		Forecast:           "Прогноз",
		DataUnavailable:    "Данные для этой даты недоступны",
		HistoricalDataNote: "Исторические данные доступны только для последних 7 дней",
		ForecastDataNote:   "Прогноз доступен только на ближайшие 14 дней",
		ClickDayForDetails: "Нажмите на день чтобы увидеть подробный прогноз",
		WeatherCalendar:    "Календарь погоды",

		GoodMorning:   "Доброе утро",
		GoodAfternoon: "Добрый день",
		GoodEvening:   "Добрый вечер",
		GoodNight:     "Доброй ночи",

		Today:              "Сегодня",
		LoadingWeatherData: "Загрузка данных о погоде...",
		TryAgain:           "Попробовать снова",

		HighHumidity:   "Высокая влажность",
		NormalHumidity: "Нормальная влажность",
		LowHumidity:    "Низкая влажность",
		HighUV:         "Высокий УФ",
		ModerateUV:     "Умеренный УФ",
		LowUV:          "Низкий УФ",

		KmPerHour:  "км/ч",
		Kilometres: "км",
		Millimetre: "мм",

		"month.1": "январь", "month.2": "февраль", "month.3": "март", "month.4": "апрель",
		"month.5": "май", "month.6": "июнь", "month.7": "июль", "month.8": "август",
		"month.9": "сентябрь", "month.10": "октябрь", "month.11": "ноябрь", "month.12": "декабрь",

		"weekday.0": "Вс", "weekday.1": "Пн", "weekday.2": "Вт", "weekday.3": "Ср",
		"weekday.4": "Чт", "weekday.5": "Пт", "weekday.6": "Сб",
	},
	EN: {
		WeatherLoadFailed:   "Failed to load weather data",
		LocationFailed:      "Failed to get location",
		GeoPermissionDenied: "Location access denied by the user",
		GeoUnavailable:      "Location information is unavailable",
		GeoTimeout:          "Location request timed out",
		GeoUnsupported:      "Geolocation is not supported",
		GeoUnknown:          "Unknown error while getting location",

		History:            "History",
		Forecast:           "Forecast",
		DataUnavailable:    "Data for this date is unavailable",
		HistoricalDataNote: "Historical data is only available for the last 7 days",
		ForecastDataNote:   "Forecast is only available for the next 14 days",
		ClickDayForDetails: "Click on a day to see detailed forecast",
		WeatherCalendar:    "Weather Calendar",

		GoodMorning:   "Good morning",
		GoodAfternoon: "Good afternoon",
		GoodEvening:   "Good evening",
		GoodNight:     "Good night",

		Today:              "Today",
		LoadingWeatherData: "Loading weather data...",
		TryAgain:           "Try Again",

		HighHumidity:   "High humidity",
		NormalHumidity: "Normal humidity",
		LowHumidity:    "Low humidity",
		HighUV:         "High UV",
		ModerateUV:     "Moderate UV",
		LowUV:          "Low UV",

		KmPerHour:  "km/h",
		Kilometres: "km",
		Millimetre: "mm",

		"month.1": "january", "month.2": "february", "month.3": "march", "month.4": "april",
		"month.5": "may", "month.6": "june", "month.7": "july", "month.8": "august",
		"month.9": "september", "month.10": "october", "month.11": "november", "month.12": "december",

		"weekday.0": "Sun", "weekday.1": "Mon", "weekday.2": "Tue", "weekday.3": "Wed",
		"weekday.4": "Thu", "weekday.5": "Fri", "weekday.6": "Sat",
	},
}
