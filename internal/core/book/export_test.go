// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

var (
	ListQuery  = listQuery
	CountQuery = countQuery
	EscapeLike = escapeLike
)
