package response

import "fbp/billing/internal/app/domains/entity/etvendor"

// VendorResponse 供应商信息
type VendorResponse struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	RatePlan string `json:"rate_plan"`

	BarcodeF  bool `json:"barcode_f"`
	CushionF  bool `json:"cushion_f"`
	PPBagF    bool `json:"pp_bag_f"`
	VideoOutF bool `json:"video_out_f"`
	VideoRetF bool `json:"video_ret_f"`
	MailerF   bool `json:"mailer_f"`
	CustBoxF  bool `json:"cust_box_f"`
}

// FromVendorEntity 供应商实体转响应对象
func FromVendorEntity(v *etvendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Code:      v.Code,
		Name:      v.Name,
		RatePlan:  v.NormalizedRatePlan(),
		BarcodeF:  v.BarcodeF,
		CushionF:  v.CushionF,
		PPBagF:    v.PPBagF,
		VideoOutF: v.VideoOutF,
		VideoRetF: v.VideoRetF,
		MailerF:   v.MailerF,
		CustBoxF:  v.CustBoxF,
	}
}

// FromVendorEntities 供应商实体列表转响应对象列表
func FromVendorEntities(vendors []*etvendor.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, FromVendorEntity(v))
	}
	return out
}
