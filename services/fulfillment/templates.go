package fulfillment

import "fmt"

func voucherAdminHTML(code string, amount float64, currency, buyerName, buyerEmail string) string {
	return fmt.Sprintf(`
		<h2>New gift voucher sold</h2>
		<p><strong>Code:</strong> %s</p>
		<p><strong>Amount:</strong> %.0f %s</p>
		<p><strong>Buyer:</strong> %s (%s)</p>
		<p>The printable voucher is attached. It has also been registered in the CRM as Active.</p>`,
		code, amount, currency, buyerName, buyerEmail)
}

func certificateHTML(adopterName, alpacaName string) string {
	return fmt.Sprintf(`
		<h2>Welcome to the herd, %s!</h2>
		<p>Thank you for adopting <strong>%s</strong>. Your adoption certificate is attached.</p>
		<p>We will keep you posted with news and photos from the farm.</p>`,
		adopterName, alpacaName)
}
