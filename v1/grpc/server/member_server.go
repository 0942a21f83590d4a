package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gov-dx-sandbox/member-service/v1/grpc/memberpb"
	"github.com/gov-dx-sandbox/member-service/v1/models"
	"github.com/gov-dx-sandbox/member-service/v1/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status messages carried in MemberResponse.Message and DeleteMemberResponse.Message
const (
	MessageMemberCreated = "Member created successfully"
	MessageMemberFound   = "Member found"
	MessageMemberUpdated = "Member updated successfully"
	MessageMemberDeleted = "Member deleted successfully"
)

// MemberServer implements memberpb.MemberServiceServer on top of MemberService
type MemberServer struct {
	memberService *services.MemberService
}

var _ memberpb.MemberServiceServer = (*MemberServer)(nil)

// NewMemberServer creates a new gRPC member server
func NewMemberServer(memberService *services.MemberService) *MemberServer {
	return &MemberServer{memberService: memberService}
}

func (s *MemberServer) CreateMember(ctx context.Context, req *memberpb.MemberRequest) (*memberpb.MemberResponse, error) {
	member, err := s.memberService.CreateMember(ctx, toMemberRequest(req))
	if err != nil {
		return nil, toStatusError(models.OpCreateMember, 0, err)
	}
	return toMemberResponse(member, MessageMemberCreated), nil
}

func (s *MemberServer) GetMember(ctx context.Context, req *memberpb.GetMemberRequest) (*memberpb.MemberResponse, error) {
	member, err := s.memberService.GetMember(ctx, req.Id)
	if err != nil {
		return nil, toStatusError(models.OpGetMember, req.Id, err)
	}
	return toMemberResponse(member, MessageMemberFound), nil
}

func (s *MemberServer) UpdateMember(ctx context.Context, req *memberpb.MemberRequest) (*memberpb.MemberResponse, error) {
	member, err := s.memberService.UpdateMember(ctx, req.Id, toMemberRequest(req))
	if err != nil {
		return nil, toStatusError(models.OpUpdateMember, req.Id, err)
	}
	return toMemberResponse(member, MessageMemberUpdated), nil
}

// DeleteMember reports a missing member as Success=false rather than an RPC error
func (s *MemberServer) DeleteMember(ctx context.Context, req *memberpb.DeleteMemberRequest) (*memberpb.DeleteMemberResponse, error) {
	err := s.memberService.DeleteMember(ctx, req.Id)
	if errors.Is(err, models.ErrMemberNotFound) {
		return &memberpb.DeleteMemberResponse{
			Success: false,
			Message: models.NotFoundMessage(req.Id),
		}, nil
	}
	if err != nil {
		return nil, toStatusError(models.OpDeleteMember, req.Id, err)
	}
	return &memberpb.DeleteMemberResponse{
		Success: true,
		Message: MessageMemberDeleted,
	}, nil
}

// ListMembers leaves Message empty on every entry
func (s *MemberServer) ListMembers(ctx context.Context, _ *memberpb.ListMembersRequest) (*memberpb.ListMembersResponse, error) {
	members, err := s.memberService.ListMembers(ctx)
	if err != nil {
		return nil, toStatusError(models.OpListMembers, 0, err)
	}

	resp := &memberpb.ListMembersResponse{Members: make([]*memberpb.MemberResponse, 0, len(members))}
	for i := range members {
		resp.Members = append(resp.Members, toMemberResponse(&members[i], ""))
	}
	return resp, nil
}

func toMemberRequest(req *memberpb.MemberRequest) models.MemberRequest {
	return models.MemberRequest{Name: req.Name, Age: req.Age}
}

func toMemberResponse(member *models.MemberResponse, message string) *memberpb.MemberResponse {
	return &memberpb.MemberResponse{
		Id:      member.ID,
		Name:    member.Name,
		Age:     member.Age,
		Message: message,
	}
}

// toStatusError maps not-found to codes.NotFound and anything else to
// codes.Internal with the cause as description
func toStatusError(op string, id int64, err error) error {
	if errors.Is(err, models.ErrMemberNotFound) {
		return status.Error(codes.NotFound, models.NotFoundMessage(id))
	}
	slog.Error("Failed to "+op, "id", id, "error", err)
	return status.Error(codes.Internal, err.Error())
}
