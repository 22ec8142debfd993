package integration_test

const (
	// Gateway related constants
	TestGatewayID = "stripe"
	TestShopURL   = "https://shop.example.com"
	TestSiteName  = "Acme"
	TestAPIKey    = "sk_test_51Hx9IntegrationSecretKey00"

	// Checkout session related constants
	TestCheckoutSessionID  = "cs_test_a1B2c3D4e5F6"
	TestCheckoutSessionURL = "https://checkout.stripe.com/c/pay/cs_test_a1B2c3D4e5F6"

	// Order related constants
	TestOrderID             = 1
	TestOrderKey            = "wc_order_a1b2c3"
	TestZeroTotalOrderID    = 2
	TestOversoldOrderID     = 3
	TestUnmanagedOrderID    = 4
	TestManagedProductID    = 1
	TestManagedProductStock = 5
)
