package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Mr7Gabriel/clone-x-app/internal/model"
)

// SeedSampleData populates an empty database with a handful of demo
// accounts and posts so the app has content on first run. It is a no-op if
// any user already exists. hashPassword is injected so this package stays
// free of the bcrypt dependency.
func (db *DB) SeedSampleData(ctx context.Context, hashPassword func(string) (string, error)) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := []struct {
		user     model.User
		password string
	}{
		{model.User{Username: "xoxo900", Email: "user@example.com", Name: "Mis X", Bio: "Flutter Developer | UI/UX Enthusiast", Location: "Makassar, Indonesia", Website: "flutter.dev", ProfileImage: "uploads/users/1/profile-default.jpg", BannerImage: "uploads/users/1/banner-default.jpg", IsVerified: true, FollowerCount: 120, FollowingCount: 245}, "lightborn90@"},
		{model.User{Username: "starfess", Email: "starfess@example.com", Name: "Starfess || CEK PINNED UNTUK KIRIM MENFESS", Bio: "Anonymous confession platform", Location: "Indonesia", Website: "starfess.com", ProfileImage: "uploads/users/2/profile-default.jpg", BannerImage: "uploads/users/2/banner-default.jpg", IsVerified: true, FollowerCount: 50000, FollowingCount: 10}, "password123"},
		{model.User{Username: "IndoPopBase", Email: "indopopbase@example.com", Name: "Indonesian Pop Base", Bio: "Your source for Indonesian pop culture news", Location: "Jakarta, Indonesia", Website: "indopopbase.com", ProfileImage: "uploads/users/3/profile-default.jpg", BannerImage: "uploads/users/3/banner-default.jpg", IsVerified: true, FollowerCount: 125000, FollowingCount: 500}, "password123"},
		{model.User{Username: "tanyakanrl", Email: "tanyarl@example.com", Name: "Tanyarl", Bio: "Ask me anything about life!", Location: "Bandung, Indonesia", Website: "tanyarl.id", ProfileImage: "uploads/users/4/profile-default.jpg", BannerImage: "uploads/users/4/banner-default.jpg", IsVerified: true, FollowerCount: 75000, FollowingCount: 1200}, "password123"},
		{model.User{Username: "westenthu", Email: "west@example.com", Name: "Western Enthusiast", Bio: "UTBK Tutor | English Teacher | Movie Lover", Location: "Surabaya, Indonesia", Website: "westernenthu.com", ProfileImage: "uploads/users/5/profile-default.jpg", BannerImage: "uploads/users/5/banner-default.jpg", FollowerCount: 15000, FollowingCount: 800}, "password123"},
		{model.User{Username: "johndoe", Email: "john@example.com", Name: "John Doe", Bio: "Software Engineer | Tech Enthusiast", Location: "San Francisco, CA", Website: "johndoe.dev", ProfileImage: "uploads/users/6/profile-default.jpg", BannerImage: "uploads/users/6/banner-default.jpg", FollowerCount: 2500, FollowingCount: 1200}, "password123"},
		{model.User{Username: "flutterdev", Email: "flutter@google.com", Name: "Flutter", Bio: "Build apps for any screen", Location: "Mountain View, CA", Website: "flutter.dev", ProfileImage: "uploads/users/7/profile-default.jpg", BannerImage: "uploads/users/7/banner-default.jpg", IsVerified: true, FollowerCount: 500000, FollowingCount: 50}, "password123"},
	}

	for i := range users {
		hash, err := hashPassword(users[i].password)
		if err != nil {
			return fmt.Errorf("sqlite: hashing seed password: %w", err)
		}
		users[i].user.PasswordHash = hash
		if err := db.CreateUser(ctx, &users[i].user); err != nil {
			return fmt.Errorf("sqlite: seeding user %q: %w", users[i].user.Username, err)
		}
	}

	// Engagement counts are seeded as display values; there are no
	// matching like/retweet/reply rows behind them.
	posts := []struct {
		userIdx  int
		content  string
		imageURL string
		likes    int
		retweets int
		replies  int
	}{
		{1, "Kepo dong idol kalian pernah viral karena apa guys?\nViral in a positive way ya yorobun. Buat seru-seruan aja, pengen kenal kehidupan fandom lain wkwk\n-star.", "", 9000, 745, 520},
		{2, "Show your now playing", "", 930, 526, 751},
		{3, "buat yang main semua app sosmed, bener gak gambar ini? yang cuma main X tidak usah menjawab.", "uploads/posts/postingan1.jpg", 21000, 1000, 728},
		{4, "Kalau Belly endingnya sama Conrad, saya Nazar\n- share 3 paket soal latihan UTBK PU/PM gratis di gdrive\n- membuka kelas privat toefl/ielts gratis 3 pertemuan untuk 3 org\n- Membagikan materi biologi SMA kelas XII gratis untuk angkt 2026\nyg mau silahkan ya wst", "uploads/posts/postingan2.jpg", 5000, 996, 584},
		{0, "Excited to start learning Flutter! #FlutterDev", "", 45, 12, 5},
		{0, "Just published my first Flutter app on Play Store. Check it out! #Flutter #MobileApp", "uploads/posts/flutter_app.jpg", 87, 23, 14},
		{6, "Introducing the latest features in Flutter 3.0! Check out our blog for more details.", "", 1253, 421, 89},
	}

	now := time.Now().UTC()
	for _, p := range posts {
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO posts (user_id, content, image_url, like_count, retweet_count, reply_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			users[p.userIdx].user.ID, p.content, p.imageURL, p.likes, p.retweets, p.replies, now, now,
		)
		if err != nil {
			return fmt.Errorf("sqlite: seeding post: %w", err)
		}
	}

	return nil
}
