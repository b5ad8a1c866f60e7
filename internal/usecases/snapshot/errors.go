package snapshot

import "errors"

var (
	// ErrPersistFailed indica que o merge foi publicado em memória mas não foi gravado.
	// O snapshot em memória continua válido e a gravação é repetida no próximo merge.
	ErrPersistFailed = errors.New("erro ao persistir o snapshot de pedidos")
)
