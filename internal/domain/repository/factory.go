package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Products() ProductRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Settings() SettingsRepository
	Reports() ReportRepository
	Finance() FinanceRepository
	Staff() StaffRepository
}
