// Package config loads and validates the orderdesk configuration.
//
// Configuration is a single TOML file. Secrets can be supplied through the
// environment using ${VAR} placeholders, which are expanded before parsing:
//
//	[matrix]
//	homeserver = "https://matrix.example.com"
//	user_id = "@orderdesk:example.com"
//	access_token = "${ORDERDESK_ACCESS_TOKEN}"
//
//	[operator]
//	room = "!operators:example.com"
//
//	[catalog]
//	path = "/var/lib/orderdesk/catalog.yaml"
//
//	[ledger]
//	path = "/var/lib/orderdesk/orders.db"
//
//	[session]
//	timeout = "30m"
//
// Duration fields use Go duration strings ("30m", "1h"). Missing optional
// fields fall back to defaults; missing required fields fail startup.
package config
