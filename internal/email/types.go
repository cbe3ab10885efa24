package email

// Email представляет структуру email сообщения
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// SMTPConfig содержит настройки SMTP провайдера
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}
