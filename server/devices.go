package server

import "fmt"

// Zone торговая зона, в которой стоит колонка. Приветствие и текст об
// акциях свои в каждой зоне: у диванов рассказываем про диваны.
type Zone struct {
	ID         string
	Name       string
	Greeting   string
	Promotions string
}

// deviceZones сопоставление идентификаторов устройств зонам зала
var deviceZones = map[string]Zone{
	"showroom-sofa-1": {
		ID:       "sofas",
		Name:     "зона диванов",
		Greeting: "Вы в зоне диванов. Назовите модель или артикул с ценника, и я расскажу подробности.",
		Promotions: "В зоне диванов действует скидка пятнадцать процентов на угловые модели " +
			"и бесплатная сборка при заказе до конца месяца.",
	},
	"showroom-mattress-1": {
		ID:       "mattresses",
		Name:     "зона матрасов",
		Greeting: "Вы в зоне матрасов. Спросите про любую модель — подскажу жесткость, высоту и цену.",
		Promotions: "На матрасы Lagoma сейчас скидка двадцать процентов при покупке с основанием, " +
			"а к любому матрасу вторая подушка в подарок.",
	},
	"showroom-entrance-1": {
		ID:       "entrance",
		Name:     "входная зона",
		Greeting: "Добро пожаловать в салон! Подскажу, где что стоит, и отвечу на вопросы о товарах.",
		Promotions: "Сегодня в салоне действуют акции в каждой зоне: спросите про скидки " +
			"у стеллажей с диванами и матрасами, там расскажу подробнее.",
	},
}

// zoneForDevice возвращает зону устройства; ok=false для неизвестных
// устройств, например веб-клиента разработчика
func zoneForDevice(applicationID string) (Zone, bool) {
	zone, ok := deviceZones[applicationID]
	return zone, ok
}

// deviceAnswer отвечает на вопрос "какой у тебя идентификатор"
func deviceAnswer(applicationID string) string {
	if zone, ok := zoneForDevice(applicationID); ok {
		return fmt.Sprintf("Эта колонка стоит в зоне «%s». Идентификатор устройства: %s.",
			zone.Name, applicationID)
	}
	return fmt.Sprintf("Идентификатор этого устройства: %s.", applicationID)
}
