package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOprLog{},
	// Shop
	&Product{},
	&Booking{},
	&C2CRequest{},
	&CscBooking{},
	&ContactMessage{},
}
