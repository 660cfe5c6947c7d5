package mapping

// builtinDictionary is the dictionary shipped with the tool, used when no
// dictionary file is configured. A file dictionary replaces it entirely
// on load.
var builtinDictionary = Dictionary{
	Version:     "1.2.0",
	LastUpdated: "2026-07-15T00:00:00Z",
	Endpoints: []EndpointMapping{
		{
			ConvergeEndpoint: "/hosted-payments/transaction_token",
			ElavonEndpoint:   "/transactions/token",
			Method:           "POST",
			Description:      "Hosted payments session token",
			FieldMappings: []FieldMapping{
				{ConvergeField: "ssl_txn_auth_token", ElavonField: "session.token", DataType: "string", Required: true},
				{ConvergeField: "ssl_vendor_id", ElavonField: "vendor.id", DataType: "string", Required: false},
			},
		},
		{
			ConvergeEndpoint: "/VirtualMerchant/processxml.do",
			ElavonEndpoint:   "/transactions",
			Method:           "POST",
			Description:      "Synchronous transaction processing",
			FieldMappings: []FieldMapping{
				{ConvergeField: "ssl_transaction_type", ElavonField: "type", DataType: "string", Required: true, Transformation: "transaction_type_map"},
				{ConvergeField: "ssl_txn_id", ElavonField: "id", DataType: "string", Required: false, Deprecated: true},
			},
		},
		{
			ConvergeEndpoint: "/VirtualMerchant/accountxml.do",
			ElavonEndpoint:   "/batches",
			Method:           "POST",
			Description:      "Batch settlement upload",
			FieldMappings: []FieldMapping{
				{ConvergeField: "ssl_batch_number", ElavonField: "batch.sequence", DataType: "integer", Required: true},
			},
		},
		{
			ConvergeEndpoint: "/hosted-payments/Checkout.js",
			ElavonEndpoint:   "/checkout/sessions",
			Method:           "POST",
			Description:      "Embedded checkout integration",
		},
		{
			ConvergeEndpoint: "/device-management/terminals",
			ElavonEndpoint:   "/devices",
			Method:           "GET",
			Description:      "Terminal and device inventory",
			FieldMappings: []FieldMapping{
				{ConvergeField: "ssl_device_id", ElavonField: "device.id", DataType: "string", Required: true},
				{ConvergeField: "ssl_terminal_id", ElavonField: "device.terminalNumber", DataType: "string", Required: false},
			},
		},
	},
	CommonFields: []FieldMapping{
		{ConvergeField: "ssl_merchant_id", ElavonField: "merchantId", DataType: "string", Required: true, MaxLength: 15},
		{ConvergeField: "ssl_user_id", ElavonField: "userId", DataType: "string", Required: true},
		{ConvergeField: "ssl_pin", ElavonField: "apiKey", DataType: "string", Required: true, Transformation: "credential_exchange"},
		{ConvergeField: "ssl_amount", ElavonField: "amount.total", DataType: "money", Required: true, Transformation: "amount_to_minor_units"},
		{ConvergeField: "ssl_currency_code", ElavonField: "amount.currencyCode", DataType: "string", Required: false, MaxLength: 3},
		{ConvergeField: "ssl_card_number", ElavonField: "card.number", DataType: "string", Required: true, MaxLength: 19},
		{ConvergeField: "ssl_exp_date", ElavonField: "card.expiry", DataType: "string", Required: true, Transformation: "split_exp_date"},
		{ConvergeField: "ssl_cvv2cvc2", ElavonField: "card.securityCode", DataType: "string", Required: false, MaxLength: 4},
		{ConvergeField: "ssl_first_name", ElavonField: "billing.firstName", DataType: "string", Required: false, MaxLength: 50},
		{ConvergeField: "ssl_last_name", ElavonField: "billing.lastName", DataType: "string", Required: false, MaxLength: 50},
		{ConvergeField: "ssl_avs_address", ElavonField: "billing.address1", DataType: "string", Required: false},
		{ConvergeField: "ssl_avs_zip", ElavonField: "billing.postalCode", DataType: "string", Required: false, MaxLength: 9},
		{ConvergeField: "ssl_invoice_number", ElavonField: "references.invoiceNumber", DataType: "string", Required: false, MaxLength: 25},
		{ConvergeField: "ssl_description", ElavonField: "references.description", DataType: "string", Required: false},
		{ConvergeField: "ssl_salestax", ElavonField: "amount.tax", DataType: "money", Required: false, Transformation: "amount_to_minor_units"},
	},
	TransformationRules: map[string]string{
		"credential_exchange":   "Exchange the Converge PIN for an Elavon API key via the credential migration portal; never embed the PIN directly.",
		"amount_to_minor_units": "Convert decimal major-unit amounts (12.34) to integer minor units (1234).",
		"split_exp_date":        "Split MMYY expiry into separate month and year components of card.expiry.",
		"transaction_type_map":  "Map Converge transaction type codes (ccsale, ccauthonly, ccreturn) to Elavon type enums (SALE, AUTH, REFUND).",
	},
	MigrationNotes: []string{
		"Elavon endpoints authenticate with OAuth bearer tokens instead of merchant_id/user_id/pin triplets.",
		"All Elavon amounts are integer minor units; audit every amount field for double conversion.",
		"Batch settlement is asynchronous: poll the batch resource instead of blocking on the upload call.",
	},
}

// BuiltinDictionary returns a copy of the embedded dictionary.
func BuiltinDictionary() *Dictionary {
	d := builtinDictionary
	return &d
}
