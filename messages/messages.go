// Package messages holds the user-facing texts and their formatters.
// HTML parse mode is used throughout so nothing needs escaping rules
// beyond the obvious.
package messages

import (
	"fmt"
	"strings"
	"time"

	"uykelishuv_bot/database"
	"uykelishuv_bot/regions"
)

const (
	MsgGenericError = `❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.`

	MsgStateMissing = `❌ Ma'lumotlar topilmadi!

Qaytadan boshlang: /start`

	MsgListingStart = `🏠 <b>E'lon joylashtirish</b>

Avval viloyatni tanlang:`

	MsgSearchStart = `🔍 <b>E'lon qidirish</b>

Avval viloyatni tanlang:`

	MsgListingCancelled = `❌ E'lon joylashtirish bekor qilindi.`

	MsgListingSubmitted = `✅ <b>E'lon muvaffaqiyatli yuborildi!</b>

E'loningiz tekshirish jarayonida. Tasdiqlanganidan so'ng barcha foydalanuvchilar ko'ra oladi.

Rahmat!`

	MsgNoSearchResults = `🔍 Sizning qidiruv mezonlaringizga mos e'lonlar topilmadi.

Filtrlarni o'zgartirib qayta urinib ko'ring.`

	MsgNoAdminRights = `❌ Sizda admin huquqi yo'q!`

	MsgQueueExhausted = `📭 Navbat tugadi. Boshqa e'lon qolmadi.`

	MsgEnterPrice = `💰 Narxni kiriting (masalan: 500):`

	MsgEnterTitle = `📝 E'lon sarlavhasini kiriting:

<b>Namuna:</b> 2 xonali uy ijara`

	MsgEnterDescription = `📄 E'lon tavsifini kiriting (ixtiyoriy):

<b>Namuna:</b> Yangi qurilgan uy, markazda joylashgan`

	MsgEnterPriceRange = `💰 Narx oralig'ini kiriting:

<b>Formatlar:</b>
• 100-500 (oralik)
• 500+ (500 dan yuqori)
• 500 (aniq narx)`

	MsgEnterRejectionReason = `❌ <b>E'lonni rad etish</b>

Rad etish sababini kiriting:`

	MsgBlocked = `🚫 Sizning hisobingiz bloklangan. Admin bilan bog'laning.`

	MsgEnterPhone = `📱 Telefon raqamingizni komanda bilan birga yuboring:

<b>Namuna:</b> /phone +998901234567`

	MsgPhoneSaved = `✅ Telefon raqamingiz saqlandi. Endi e'lonlaringiz bilan qiziqqanlar sizga qo'ng'iroq qila oladi.`

	MsgHelp = `📖 <b>Yordam</b>

Bu bot uy-joy kelishuvi uchun yaratilgan.

<b>Asosiy funksiyalar:</b>
• 📝 E'lon joylashtirish
• 🔍 Uy qidirish
• 📦 Mening e'lonlarim

<b>Komandalar:</b>
/start - Botni ishga tushirish
/phone - Telefon raqamini saqlash
/help - Yordam olish`
)

func FormatWelcome(name string) string {
	return fmt.Sprintf(`🏠 <b>UyKelishuv</b>ga xush kelibsiz, %s!

<b>"Ijaradan sotuvgacha, egadan bevosita"</b>

Bu yerda siz:
• 🏡 Uy ijara/sotuv e'lonlarini joylashtirish
• 🔍 Kerakli uyni qidirish
• 💬 Ega bilan bevosita aloqa qilish

imkoniyatiga egasiz.

Boshlash uchun quyidagi tugmalardan birini tanlang:`, name)
}

func FormatValidationError(reason string) string {
	return "❌ " + reason
}

func typeName(t database.ListingType) string {
	if t == database.TypeIjara {
		return "Ijara"
	}
	return "Sotuv"
}

func propertyTypeName(pt database.PropertyType) string {
	switch pt {
	case database.PropertyKvartira:
		return "Kvartira"
	case database.PropertyUy:
		return "Uy"
	case database.PropertyOfis:
		return "Ofis"
	}
	return string(pt)
}

func formatPrice(price float64, currency string) string {
	if currency == "UZS" {
		return fmt.Sprintf("%.0f so'm", price)
	}
	return fmt.Sprintf("$%.0f", price)
}

func statusLine(status database.ListingStatus) string {
	switch status {
	case database.StatusPending:
		return "⏳ Kutmoqda"
	case database.StatusApproved:
		return "✅ Tasdiqlangan"
	case database.StatusRejected:
		return "❌ Rad etilgan"
	case database.StatusArchived:
		return "📦 Arxivlangan"
	}
	return string(status)
}

// FormatDraftPreview renders the confirmation screen at the end of the
// creation flow.
func FormatDraftPreview(d database.ListingDraft) string {
	var b strings.Builder
	b.WriteString("📋 <b>E'lon ko'rinishi</b>\n\n")
	fmt.Fprintf(&b, "🏠 <b>%s</b>\n", d.Title)
	fmt.Fprintf(&b, "📍 %s - %s\n", regions.Name(d.RegionCode), d.CityName)

	line := typeName(d.Type)
	if d.PropertyType != nil {
		line += " • " + propertyTypeName(*d.PropertyType)
	}
	fmt.Fprintf(&b, "📊 %s • %d xona\n", line, d.Rooms)
	fmt.Fprintf(&b, "💰 %s\n", formatPrice(d.Price, d.Currency))
	fmt.Fprintf(&b, "🛋️ Mebellar: %s\n", yesNo(d.Furnished))
	fmt.Fprintf(&b, "🐕 Hayvonlar: %s\n", yesNo(d.PetsAllowed))

	if d.Description != nil {
		fmt.Fprintf(&b, "\n📝 %s\n", *d.Description)
	}
	b.WriteString("\nE'lonni yuborish uchun 'Yuborish' tugmasini bosing.")
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "✅"
	}
	return "❌"
}

// FormatSearchResults renders one page of results. start is the index
// of the page's first item in the full result set, so numbering runs
// across pages.
func FormatSearchResults(page []*database.Listing, start, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>Qidiruv natijalari</b> (jami %d ta)\n\n", total)

	for i, l := range page {
		fmt.Fprintf(&b, "<b>%d. %s</b>\n", start+i+1, l.Title)
		fmt.Fprintf(&b, "📍 %s - %s\n", regions.Name(l.RegionCode), l.CityName)
		fmt.Fprintf(&b, "🏠 %s • %d xona\n", typeName(l.Type), l.Rooms)
		fmt.Fprintf(&b, "💰 %s\n\n", formatPrice(l.Price, l.Currency))
	}
	return b.String()
}

// FormatMyListings renders the owner's listings with their statuses.
func FormatMyListings(listings []*database.Listing) string {
	if len(listings) == 0 {
		return "📋 <b>Mening e'lonlarim</b>\n\nHozircha e'lonlar yo'q."
	}

	var b strings.Builder
	b.WriteString("📋 <b>Mening e'lonlarim</b>\n\n")
	for i, l := range listings {
		fmt.Fprintf(&b, "<b>%d. %s</b>\n", i+1, l.Title)
		fmt.Fprintf(&b, "📍 %s - %s\n", regions.Name(l.RegionCode), l.CityName)
		fmt.Fprintf(&b, "💰 %s\n", formatPrice(l.Price, l.Currency))
		fmt.Fprintf(&b, "📅 %s\n", l.CreatedAt.Format("02.01.2006"))
		fmt.Fprintf(&b, "📊 %s\n\n", statusLine(l.Status))
	}
	fmt.Fprintf(&b, "Jami: %d ta e'lon", len(listings))
	return b.String()
}

// FormatModerationCard renders one queue item for an admin.
func FormatModerationCard(l *database.Listing, owner *database.User, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>E'lon moderatsiyasi</b> (%d/%d)\n\n", index+1, total)
	if owner != nil {
		fmt.Fprintf(&b, "👤 <b>Muallif:</b> %s\n", owner.Name)
		phone := "Ko'rsatilmagan"
		if owner.PhoneNumber != nil {
			phone = *owner.PhoneNumber
		}
		fmt.Fprintf(&b, "📱 <b>Telefon:</b> %s\n", phone)
	}
	fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s - %s\n", regions.Name(l.RegionCode), l.CityName)

	line := typeName(l.Type)
	if l.PropertyType != nil {
		line += " • " + propertyTypeName(*l.PropertyType)
	}
	fmt.Fprintf(&b, "🏠 <b>E'lon turi:</b> %s\n", line)
	fmt.Fprintf(&b, "🚪 <b>Xonalar:</b> %d\n", l.Rooms)
	fmt.Fprintf(&b, "💰 <b>Narx:</b> %s\n", formatPrice(l.Price, l.Currency))
	fmt.Fprintf(&b, "🛋️ <b>Mebellar:</b> %s\n", yesNo(l.Furnished))
	fmt.Fprintf(&b, "🐕 <b>Hayvonlar:</b> %s\n", yesNo(l.PetsAllowed))
	fmt.Fprintf(&b, "📝 <b>Sarlavha:</b> %s\n", l.Title)
	if l.Description != nil {
		fmt.Fprintf(&b, "📄 <b>Tavsif:</b> %s\n", *l.Description)
	}
	fmt.Fprintf(&b, "📅 <b>Yaratilgan:</b> %s\n", l.CreatedAt.Format("02.01.2006 15:04"))
	b.WriteString("\nUshbu e'lon bilan nima qilasiz?")
	return b.String()
}

func FormatListingApproved(l *database.Listing) string {
	return fmt.Sprintf(`✅ <b>E'loningiz tasdiqlandi!</b>

🏠 <b>%s</b>
📍 %s - %s
💰 %s

E'loningiz endi barcha foydalanuvchilar tomonidan ko'riladi va qidirish natijalarida paydo bo'ladi.

Rahmat! 🎉`,
		l.Title, regions.Name(l.RegionCode), l.CityName, formatPrice(l.Price, l.Currency))
}

func FormatListingRejected(l *database.Listing, reason string) string {
	msg := fmt.Sprintf(`❌ <b>E'loningiz rad etildi</b>

🏠 <b>%s</b>
📍 %s - %s
💰 %s`,
		l.Title, regions.Name(l.RegionCode), l.CityName, formatPrice(l.Price, l.Currency))

	if reason != "" {
		msg += fmt.Sprintf("\n\n<b>Sabab:</b> %s", reason)
	}
	return msg + "\n\nIltimos, e'lon qoidalariga rioya qiling va qayta urinib ko'ring."
}

// FormatStatistics renders the admin statistics screen.
func FormatStatistics(s *database.Statistics) string {
	return fmt.Sprintf(`📊 <b>Statistika</b>

👥 <b>Foydalanuvchilar:</b>
• Jami: %d
• Tasdiqlangan: %d
• Bloklangan: %d

🏠 <b>E'lonlar:</b>
• Jami: %d
• Kutmoqda: %d
• Tasdiqlangan: %d
• Rad etilgan: %d
• Arxivlangan: %d

📈 <b>Turlari bo'yicha:</b>
• Ijara: %d
• Sotuv: %d

✅ Tasdiqlash darajasi: %.0f%%`,
		s.TotalUsers, s.VerifiedUsers, s.BlockedUsers,
		s.TotalListings, s.PendingListings, s.ApprovedListings,
		s.RejectedListings, s.ArchivedListings,
		s.RentalListings, s.SaleListings,
		s.ApprovalRate()*100)
}

// FormatOwnerContact is sent to a seeker who asked for the owner's
// contact details from a search result.
func FormatOwnerContact(l *database.Listing, owner *database.User) string {
	phone := "Ko'rsatilmagan"
	if owner.PhoneNumber != nil {
		phone = *owner.PhoneNumber
	}
	return fmt.Sprintf(`📞 <b>Aloqa ma'lumotlari</b>

🏠 <b>%s</b>
👤 Egasi: %s
📱 Telefon: %s

Ega bilan bevosita bog'laning.`, l.Title, owner.Name, phone)
}

// FormatArchiveReport is sent to the log channel after maintenance.
func FormatArchiveReport(archived int64, swept int, at time.Time) string {
	return fmt.Sprintf("🧹 Tozalash (%s): %d ta e'lon arxivlandi, %d ta sessiya o'chirildi",
		at.Format("02.01.2006 15:04"), archived, swept)
}
