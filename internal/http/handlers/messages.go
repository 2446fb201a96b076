package handlers

// Message keys for user-facing strings. The en strings are the canonical
// wording shown in the UI.
const (
	msgEmptyPrompt    = "empty_prompt"
	msgBusy           = "busy"
	msgGenerating     = "generating"
	msgNoImage        = "no_image"
	msgGenerateFailed = "generate_failed"
	msgNoResult       = "no_result"
	msgBadUpload      = "bad_upload"
)

var messages = map[string]map[string]string{
	"en": {
		msgEmptyPrompt:    "Please enter a prompt first.",
		msgBusy:           "An image is already being generated. Please wait.",
		msgGenerating:     "Generating your image...",
		msgNoImage:        "No image was generated. Please try a different prompt.",
		msgGenerateFailed: "Image generation failed. Please try again.",
		msgNoResult:       "There is no generated image yet.",
		msgBadUpload:      "The uploaded file could not be read as an image.",
	},
	"id": {
		msgEmptyPrompt:    "Masukkan prompt terlebih dahulu.",
		msgBusy:           "Gambar sedang dibuat. Mohon tunggu.",
		msgGenerating:     "Sedang membuat gambar...",
		msgNoImage:        "Tidak ada gambar yang dihasilkan. Coba prompt yang lain.",
		msgGenerateFailed: "Pembuatan gambar gagal. Silakan coba lagi.",
		msgNoResult:       "Belum ada gambar yang dihasilkan.",
		msgBadUpload:      "File yang diunggah tidak dapat dibaca sebagai gambar.",
	},
}

func message(locale, key string) string {
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	return messages["en"][key]
}
