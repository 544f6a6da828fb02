package availability

import (
	"github.com/blocmark/BM-PricingService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к базе данных
type DBExecutor = dbmetrics.DBExecutor

// TxExecutor интерфейс для работы с транзакциями
type TxExecutor = dbmetrics.TxExecutor
