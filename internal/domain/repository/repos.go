package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Silos        SiloRepository
	Dispatches   DispatchRepository
	Clients      ClientRepository
	Drivers      DriverRepository
	CementInputs CementInputRepository
}
