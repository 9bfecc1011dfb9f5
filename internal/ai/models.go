package ai

// VehicleInfo результат распознавания автомобиля по фото.
type VehicleInfo struct {
	Plate      string  `json:"plate"`      // Госномер, пустая строка если не виден
	Make       string  `json:"make"`       // Марка, напр. "Toyota"
	Model      string  `json:"model"`      // Модель, напр. "Corolla"
	Color      string  `json:"color"`      // Цвет кузова
	Year       string  `json:"year"`       // Приблизительный год/поколение, может быть пустым
	Confidence float64 `json:"confidence"` // Уверенность модели 0.0–1.0
}

// DamagedPart одна повреждённая деталь кузова.
type DamagedPart struct {
	Part        string `json:"part"`        // Деталь, напр. "передний бампер"
	Damage      string `json:"damage"`      // Тип повреждения: царапина, вмятина, скол, ржавчина...
	Severity    string `json:"severity"`    // minor|moderate|severe
	Description string `json:"description"` // Короткое описание для заказ-наряда
}

// DamageReport итог осмотра повреждений по фото.
type DamageReport struct {
	Parts      []DamagedPart `json:"parts"`      // Список повреждённых деталей
	Assessment string        `json:"assessment"` // Общая оценка для клиента
	Severity   string        `json:"severity"`   // Итоговая серьёзность: minor|moderate|severe
}

// Citation источник из поисковой выдачи, на который опирался ответ.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatAnswer ответ ассистента с опциональными источниками (при включённом поиске).
type ChatAnswer struct {
	Text    string     `json:"text"`
	Sources []Citation `json:"sources,omitempty"`
}
