package patientservice

// Patient модель пациента из справочника пациентов
type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Contact предпочтительный канал связи: email, затем телефон
func (p *Patient) Contact() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Phone
}
