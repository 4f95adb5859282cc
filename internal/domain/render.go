package domain

// SenderIdentity — данные отправителя, попадающие в документ и подпись письма.
type SenderIdentity struct {
	DisplayName    string
	Email          string
	Department     string
	GuidanceNumber string // добавочный номер голосового меню; только цифры
}

// RenderJob — задание на генерацию документа заказа для одного поставщика.
type RenderJob struct {
	Supplier  Supplier
	Items     []OrderLine
	Sender    SenderIdentity
	OutputDir string
}
