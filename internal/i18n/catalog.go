// Package i18n resolves the active display language for a request and
// translates message keys into Arabic, English or Turkish. Built-in catalogs
// ship with the binary; admins can override single messages through the
// translations table, which the Store merges on top at load time.
package i18n

// Language codes supported by the application. The enabled subset and the
// default are configured in the languages table.
const (
	LangArabic  = "ar"
	LangEnglish = "en"
	LangTurkish = "tr"
)

// Dir returns the text direction clients should apply for a language.
func Dir(lang string) string {
	if lang == LangArabic {
		return "rtl"
	}
	return "ltr"
}

// builtin holds the compiled-in message catalogs, one flat key->string table
// per language. English is the fallback table and must define every key.
var builtin = map[string]map[string]string{
	LangEnglish: {
		"errors.internal":              "Something went wrong, please try again",
		"errors.not_found":             "Not found",
		"errors.forbidden":             "You are not allowed to do that",
		"errors.unauthorized":          "Please sign in first",
		"errors.invalid_body":          "Invalid request",
		"properties.not_found":         "Listing not found",
		"comments.empty":               "Comment cannot be empty",
		"comments.digits":              "Comments may not contain numbers",
		"comments.parent_missing":      "The comment you are replying to no longer exists",
		"comments.create_failed":       "Could not post your comment",
		"comments.delete_failed":       "Could not delete the comment",
		"notifications.new_comment":    "New comment on your listing",
		"reviews.duplicate":            "You have already reviewed this listing",
		"reviews.create_failed":        "Could not submit your review",
		"favorites.add_failed":         "Could not save to favorites",
		"language.updated":             "Language preference saved",
		"validation.name_required":     "Full name is required",
		"validation.name_letters":      "Name may only contain letters and spaces",
		"validation.username_required": "Username is required",
		"validation.username_format":   "Username may only contain letters, numbers and underscores",
		"validation.username_taken":    "This username is already taken",
		"validation.email_required":    "Email is required",
		"validation.email_invalid":     "Enter a valid email address",
		"validation.email_taken":       "This email is already registered",
		"validation.password_required": "Password is required",
		"validation.password_mismatch": "Passwords do not match",
		"validation.phone_required":    "Phone number is required",
		"validation.phone_invalid":     "Enter a valid phone number",
		"validation.phone_taken":       "This phone number is already registered",
		"validation.whatsapp_required": "WhatsApp number is required for seller accounts",
		"validation.whatsapp_taken":    "This WhatsApp number is already registered",
		"validation.terms_required":    "You must accept the terms of service",
		"validation.check_failed":      "Could not verify this field, please try again",
	},
	LangArabic: {
		"errors.internal":              "حدث خطأ ما، يرجى المحاولة مرة أخرى",
		"errors.not_found":             "غير موجود",
		"errors.forbidden":             "غير مسموح لك بذلك",
		"errors.unauthorized":          "يرجى تسجيل الدخول أولاً",
		"errors.invalid_body":          "طلب غير صالح",
		"properties.not_found":         "العقار غير موجود",
		"comments.empty":               "لا يمكن أن يكون التعليق فارغاً",
		"comments.digits":              "لا يجوز أن يحتوي التعليق على أرقام",
		"comments.parent_missing":      "التعليق الذي ترد عليه لم يعد موجوداً",
		"comments.create_failed":       "تعذر نشر تعليقك",
		"comments.delete_failed":       "تعذر حذف التعليق",
		"notifications.new_comment":    "تعليق جديد على عقارك",
		"reviews.duplicate":            "لقد قمت بتقييم هذا العقار من قبل",
		"reviews.create_failed":        "تعذر إرسال تقييمك",
		"favorites.add_failed":         "تعذر الحفظ في المفضلة",
		"language.updated":             "تم حفظ تفضيل اللغة",
		"validation.name_required":     "الاسم الكامل مطلوب",
		"validation.name_letters":      "يجب أن يحتوي الاسم على حروف ومسافات فقط",
		"validation.username_required": "اسم المستخدم مطلوب",
		"validation.username_format":   "اسم المستخدم يقبل الحروف والأرقام والشرطة السفلية فقط",
		"validation.username_taken":    "اسم المستخدم مأخوذ بالفعل",
		"validation.email_required":    "البريد الإلكتروني مطلوب",
		"validation.email_invalid":     "أدخل بريداً إلكترونياً صالحاً",
		"validation.email_taken":       "هذا البريد الإلكتروني مسجل بالفعل",
		"validation.password_required": "كلمة المرور مطلوبة",
		"validation.password_mismatch": "كلمتا المرور غير متطابقتين",
		"validation.phone_required":    "رقم الهاتف مطلوب",
		"validation.phone_invalid":     "أدخل رقم هاتف صالحاً",
		"validation.phone_taken":       "رقم الهاتف مسجل بالفعل",
		"validation.whatsapp_required": "رقم واتساب مطلوب لحسابات البائعين",
		"validation.whatsapp_taken":    "رقم واتساب مسجل بالفعل",
		"validation.terms_required":    "يجب الموافقة على شروط الخدمة",
		"validation.check_failed":      "تعذر التحقق من هذا الحقل، حاول مرة أخرى",
	},
	LangTurkish: {
		"errors.internal":              "Bir şeyler ters gitti, lütfen tekrar deneyin",
		"errors.not_found":             "Bulunamadı",
		"errors.forbidden":             "Bunu yapma yetkiniz yok",
		"errors.unauthorized":          "Lütfen önce giriş yapın",
		"errors.invalid_body":          "Geçersiz istek",
		"properties.not_found":         "İlan bulunamadı",
		"comments.empty":               "Yorum boş olamaz",
		"comments.digits":              "Yorumlar rakam içeremez",
		"comments.parent_missing":      "Yanıtladığınız yorum artık mevcut değil",
		"comments.create_failed":       "Yorumunuz gönderilemedi",
		"comments.delete_failed":       "Yorum silinemedi",
		"notifications.new_comment":    "İlanınıza yeni yorum yapıldı",
		"reviews.duplicate":            "Bu ilanı zaten değerlendirdiniz",
		"reviews.create_failed":        "Değerlendirmeniz gönderilemedi",
		"favorites.add_failed":         "Favorilere kaydedilemedi",
		"language.updated":             "Dil tercihi kaydedildi",
		"validation.name_required":     "Ad soyad zorunludur",
		"validation.name_letters":      "Ad yalnızca harf ve boşluk içerebilir",
		"validation.username_required": "Kullanıcı adı zorunludur",
		"validation.username_format":   "Kullanıcı adı yalnızca harf, rakam ve alt çizgi içerebilir",
		"validation.username_taken":    "Bu kullanıcı adı zaten alınmış",
		"validation.email_required":    "E-posta zorunludur",
		"validation.email_invalid":     "Geçerli bir e-posta adresi girin",
		"validation.email_taken":       "Bu e-posta zaten kayıtlı",
		"validation.password_required": "Şifre zorunludur",
		"validation.password_mismatch": "Şifreler eşleşmiyor",
		"validation.phone_required":    "Telefon numarası zorunludur",
		"validation.phone_invalid":     "Geçerli bir telefon numarası girin",
		"validation.phone_taken":       "Bu telefon numarası zaten kayıtlı",
		"validation.whatsapp_required": "Satıcı hesapları için WhatsApp numarası zorunludur",
		"validation.whatsapp_taken":    "Bu WhatsApp numarası zaten kayıtlı",
		"validation.terms_required":    "Hizmet koşullarını kabul etmelisiniz",
		"validation.check_failed":      "Bu alan doğrulanamadı, lütfen tekrar deneyin",
	},
}

// BuiltinLanguages lists the language codes the binary ships catalogs for.
func BuiltinLanguages() []string {
	return []string{LangArabic, LangEnglish, LangTurkish}
}
