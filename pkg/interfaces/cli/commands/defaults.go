package commands

import (
	"stockalloc/pkg/domain/entities"
)

// defaultStorePriority is the built-in store order used when no config file
// is given. Stores at the top receive units first.
var defaultStorePriority = []string{
	"125006 KZN-PC-Мега",
	"125007 MSK-PC-Гагаринский",
	"125011 SPB-PC-Мега 2 Парнас",
	"125005 EKT-PC-Мега",
	"125008 MSK-PC-РИО Ленинский",
	"125009 NNV-PC-Фантастика",
	"125004 EKT-PC-Гринвич",
	"129877 MSK-PC-Мега 1 Теплый Стан",
	"130143 MSK-PCM-Мега 2 Химки",
	"150002 MSK-DV-Капитолий",
	"125839 - MSK-PC-Outlet Белая Дача",
}

// defaultStorePairs holds the built-in balancing pairs: Ekaterinburg and
// Moscow stores that trade surplus between themselves before the pool.
var defaultStorePairs = []entities.StorePair{
	{A: 125004, B: 125005},
	{A: 125008, B: 129877},
}

// DefaultAllocationConfig returns the built-in configuration.
func DefaultAllocationConfig() (*entities.AllocationConfig, error) {
	return entities.NewAllocationConfig(defaultStorePriority, nil, defaultStorePairs)
}
