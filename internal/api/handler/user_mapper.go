package handler

import "github.com/codetrail/marketplace-api/internal/core/ports"

func toProfileResponse(p *ports.Profile) profileResponse {
	return profileResponse{
		Email:            p.Email,
		Nickname:         p.Nickname,
		IsAdmin:          p.IsAdmin,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Cellphone:        p.Cellphone,
		Address:          p.Address,
		ProfilePhotoID:   p.ProfilePhotoID,
		ProfilePhotoName: p.ProfilePhotoName,
		ProfilePhotoType: p.ProfilePhotoType,
		ProfilePhotoSize: p.ProfilePhotoSize,
		ProfilePhotoPath: p.ProfilePhotoPath,
	}
}

func toProfileUpdateInput(req profileRequest) ports.ProfileUpdateInput {
	return ports.ProfileUpdateInput{
		Nickname:  req.Nickname,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Cellphone: req.Cellphone,
		Address:   req.Address,
	}
}

func toManagedUserResponses(users []ports.ManagedUser) []managedUserResponse {
	out := make([]managedUserResponse, len(users))
	for i, u := range users {
		out[i] = managedUserResponse{
			ID:        u.ID,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			IsBanned:  u.IsBanned,
			CreatedAt: u.CreatedAt.UTC(),
			UpdatedAt: u.UpdatedAt.UTC(),
		}
	}
	return out
}

func toBannedPageResponse(p *ports.BannedPage) bannedPageResponse {
	return bannedPageResponse{
		Docs:  toManagedUserResponses(p.Docs),
		Total: p.Total,
		Limit: p.Limit,
		Page:  p.Page,
		Pages: p.Pages,
	}
}
