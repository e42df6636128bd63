package normalizer

import "nft-recon/internal/domain"

// saleFields is a mapped sale before the keep/drop decision.
type saleFields struct {
	createdTime Field
	fromAddress Field
	toAddress   Field
	txHash      Field
	collection  Field
	contract    Field
	tokenID     Field
	quantity    int64
}

// validateSale returns the names of the identity fields a sale lacks. A sale
// with any missing identity field is dropped rather than defaulted.
func validateSale(s saleFields) []string {
	var names []string
	required := []struct {
		name  string
		field Field
	}{
		{"created_time", s.createdTime},
		{"from_address", s.fromAddress},
		{"to_address", s.toAddress},
		{"txhash", s.txHash},
		{"contract_address", s.contract},
		{"token_id", s.tokenID},
	}
	for _, r := range required {
		if !r.field.OK || r.field.Value == domain.NotAvailable {
			names = append(names, r.name)
		}
	}
	return names
}

func (s saleFields) event() domain.Event {
	return domain.Event{
		EventType:       domain.EventSale,
		CreatedTime:     s.createdTime.OrNA(),
		FromAddress:     s.fromAddress.OrNA(),
		ToAddress:       s.toAddress.OrNA(),
		TxHash:          s.txHash.OrNA(),
		CollectionName:  s.collection.OrNA(),
		ContractAddress: s.contract.OrNA(),
		TokenID:         s.tokenID.OrNA(),
		Quantity:        quantityPtr(s.quantity),
	}
}
