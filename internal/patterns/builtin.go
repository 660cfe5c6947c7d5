package patterns

// builtinRules contains the default detection rules for legacy Converge
// usage. These cover the five endpoint families, the ssl_ field-name
// convention, known Converge hosts, and per-language HTTP call idioms.
var builtinRules = []Rule{
	// ============ Endpoint families ============
	{
		ID:       "hosted_payments_token_path",
		Category: CategoryEndpoint,
		Endpoint: EndpointHostedPayments,
		Pattern:  "hosted-payments/transaction_token",
		Literal:  true,
	},
	{
		ID:       "hosted_payments_path",
		Category: CategoryEndpoint,
		Endpoint: EndpointHostedPayments,
		Pattern:  "/hosted-payments",
		Literal:  true,
	},
	{
		ID:       "checkout_script",
		Category: CategoryEndpoint,
		Endpoint: EndpointCheckout,
		Pattern:  `(?i)checkout\.js`,
	},
	{
		ID:       "process_txn_online",
		Category: CategoryEndpoint,
		Endpoint: EndpointProcessTransaction,
		Pattern:  "ProcessTransactionOnline",
		Literal:  true,
	},
	{
		ID:       "process_txn_xml",
		Category: CategoryEndpoint,
		Endpoint: EndpointProcessTransaction,
		Pattern:  "processxml.do",
		Literal:  true,
	},
	{
		ID:       "process_txn_virtualmerchant",
		Category: CategoryEndpoint,
		Endpoint: EndpointProcessTransaction,
		Pattern:  "VirtualMerchant/process",
		Literal:  true,
	},
	{
		ID:       "batch_path",
		Category: CategoryEndpoint,
		Endpoint: EndpointBatchProcessing,
		Pattern:  "batch-processing",
		Literal:  true,
	},
	{
		ID:       "batch_xml",
		Category: CategoryEndpoint,
		Endpoint: EndpointBatchProcessing,
		Pattern:  "accountxml.do",
		Literal:  true,
	},
	{
		ID:       "device_management_path",
		Category: CategoryEndpoint,
		Endpoint: EndpointDeviceManagement,
		Pattern:  `(?i)device[_-]management`,
	},
	{
		ID:       "device_terminal_path",
		Category: CategoryEndpoint,
		Endpoint: EndpointDeviceManagement,
		Pattern:  "/terminals",
		Literal:  true,
	},

	// ============ SSL fields ============
	{
		ID:       "ssl_field",
		Category: CategorySslField,
		Pattern:  `\bssl_[A-Za-z0-9_]+`,
	},

	// ============ Converge hosts ============
	{
		ID:       "converge_url",
		Category: CategoryURL,
		Pattern:  `https?://[A-Za-z0-9._-]*(?:convergepay\.com|myvirtualmerchant\.com)[^\s"'` + "`" + `]*`,
	},

	// ============ Call idioms ============
	{ID: "js_fetch", Category: CategoryAPICall, Pattern: "fetch(", Literal: true, Languages: []string{"javascript"}},
	{ID: "js_axios", Category: CategoryAPICall, Pattern: "axios", Literal: true, Languages: []string{"javascript"}},
	{ID: "js_xhr", Category: CategoryAPICall, Pattern: "XMLHttpRequest", Literal: true, Languages: []string{"javascript"}},
	{ID: "js_jquery_ajax", Category: CategoryAPICall, Pattern: "$.ajax", Literal: true, Languages: []string{"javascript"}},
	{ID: "php_curl_init", Category: CategoryAPICall, Pattern: "curl_init", Literal: true, Languages: []string{"php"}},
	{ID: "php_curl_exec", Category: CategoryAPICall, Pattern: "curl_exec", Literal: true, Languages: []string{"php"}},
	{ID: "php_file_get_contents", Category: CategoryAPICall, Pattern: "file_get_contents", Literal: true, Languages: []string{"php"}},
	{ID: "py_requests", Category: CategoryAPICall, Pattern: `requests\.(?:post|get|put|delete|request)`, Languages: []string{"python"}},
	{ID: "py_urlopen", Category: CategoryAPICall, Pattern: "urlopen", Literal: true, Languages: []string{"python"}},
	{ID: "java_http_url_connection", Category: CategoryAPICall, Pattern: "HttpURLConnection", Literal: true, Languages: []string{"java"}},
	{ID: "java_http_client", Category: CategoryAPICall, Pattern: "HttpClient", Literal: true, Languages: []string{"java", "csharp"}},
	{ID: "java_okhttp", Category: CategoryAPICall, Pattern: "OkHttpClient", Literal: true, Languages: []string{"java"}},
	{ID: "cs_web_request", Category: CategoryAPICall, Pattern: "HttpWebRequest", Literal: true, Languages: []string{"csharp"}},
	{ID: "rb_net_http", Category: CategoryAPICall, Pattern: "Net::HTTP", Literal: true, Languages: []string{"ruby"}},
	{ID: "rb_faraday", Category: CategoryAPICall, Pattern: "Faraday", Literal: true, Languages: []string{"ruby"}},
}

// BuiltinCatalog returns a catalog compiled from the builtin rules.
// Builtin patterns are compile-checked by tests, so this cannot fail at
// runtime with the shipped table.
func BuiltinCatalog() *Catalog {
	c, err := NewCatalog(builtinRules)
	if err != nil {
		panic("patterns: builtin rules failed to compile: " + err.Error())
	}
	return c
}
